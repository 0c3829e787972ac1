package execution

// Scheduler distributes files across workers
type Scheduler interface {
	Schedule(files []string, workerCount int) [][]string
}

// RoundRobinScheduler distributes files evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule deals files to workers in turn. Workers left without files get
// an empty, non-nil slice.
func (s *RoundRobinScheduler) Schedule(files []string, workerCount int) [][]string {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]string, workerCount)
	for i := range distribution {
		distribution[i] = make([]string, 0, len(files)/workerCount+1)
	}

	for i, file := range files {
		distribution[i%workerCount] = append(distribution[i%workerCount], file)
	}

	return distribution
}
