package metrics

import (
	"time"

	"go.uber.org/atomic"
)

// SearchMetric summarises one move search. Fields that do not apply to a
// strategy stay zero.
type SearchMetric struct {
	Strategy    string
	Duration    time.Duration
	Nodes       int // Positions evaluated
	CacheHits   int
	Cutoffs     int
	Depth       int // Deepest completed alpha-beta iteration
	Generations int
	Iterations  int
	Accepted    int // Annealing candidates accepted
	Fallback    bool
}

type MoveMetric struct {
	Step   int
	Player int // +1 black, -1 white
	Move   string
	Score  float64
	SearchMetric
}

type GameMetric struct {
	ID         string
	Winner     string
	Black      int // Final disk counts
	White      int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Passes     int
}

type Collector interface {
	Start(strategy string)
	AddNode()
	AddCacheHit()
	AddCutoff()
	SetDepth(depth int)
	AddGeneration()
	AddIteration(accepted bool)
	Complete() SearchMetric
}

type collector struct {
	strategy    string
	startTime   time.Time
	nodes       atomic.Int64
	cacheHits   atomic.Int64
	cutoffs     atomic.Int64
	depth       atomic.Int64
	generations atomic.Int64
	iterations  atomic.Int64
	accepted    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.cacheHits.Store(0)
	m.cutoffs.Store(0)
	m.depth.Store(0)
	m.generations.Store(0)
	m.iterations.Store(0)
	m.accepted.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Inc()
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Inc()
}

func (m *collector) AddCutoff() {
	m.cutoffs.Inc()
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int64(depth))
}

func (m *collector) AddGeneration() {
	m.generations.Inc()
}

func (m *collector) AddIteration(accepted bool) {
	m.iterations.Inc()
	if accepted {
		m.accepted.Inc()
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		CacheHits:   int(m.cacheHits.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		Depth:       int(m.depth.Load()),
		Generations: int(m.generations.Load()),
		Iterations:  int(m.iterations.Load()),
		Accepted:    int(m.accepted.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)      {}
func (m *dummyCollector) AddNode()                   {}
func (m *dummyCollector) AddCacheHit()               {}
func (m *dummyCollector) AddCutoff()                 {}
func (m *dummyCollector) SetDepth(depth int)         {}
func (m *dummyCollector) AddGeneration()             {}
func (m *dummyCollector) AddIteration(accepted bool) {}
func (m *dummyCollector) Complete() SearchMetric     { return SearchMetric{} }
