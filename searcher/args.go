package searcher

// Hyperparameters for alpha-beta move ordering

const CORNER_PRIORITY = 100
const EDGE_PRIORITY = 10

// Number of independently locked cache shards, a power of two
const CACHE_SHARDS = 64

const (
	AlphaBetaName = "alphabeta"
	GeneticName   = "genetic"
	AnnealingName = "annealing"
	RandomName    = "random"
)
