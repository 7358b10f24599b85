// meta/meta.go
package meta

import "time"

// DEPTH defines the default alpha-beta search depth.
const DEPTH = 8

// GENERATIONS defines the default number of genetic generations.
const GENERATIONS = 50

// POPULATION defines the default genetic population size.
const POPULATION = 20

// MUTATION_RATE defines the probability an offspring is replaced by a random legal move.
const MUTATION_RATE = 0.1

// ANNEALING_BUDGET defines the default wall clock budget for simulated annealing.
const ANNEALING_BUDGET = 4 * time.Second

// ACCEPTANCE_THRESHOLD is the fixed acceptance threshold used when annealing is
// configured to compare against a constant instead of a random draw.
const ACCEPTANCE_THRESHOLD = 0.5

// HUMAN_TIMEOUT defines how long a human has to play before a random move is forced.
const HUMAN_TIMEOUT = 30 * time.Second

// POLL_INTERVAL defines how often a waiting human turn checks its deadline.
const POLL_INTERVAL = 100 * time.Millisecond

// MAX_TURNS caps the length of a game, passes included.
const MAX_TURNS = 200
