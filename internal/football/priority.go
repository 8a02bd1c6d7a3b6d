package football

import "fmt"

// Priority is a scheduling class. Only the ordering of the constants is
// meaningful; see Levels for the numbers handed to the scheduler.
type Priority int

// Priority classes, lowest first.
const (
	PriorityLowDefense Priority = iota
	PriorityMidDefense
	PriorityOffense
	PriorityHiDefense
	PriorityCrazyFan
	PriorityReferee

	numPriorities = int(PriorityReferee) + 1
)

func (p Priority) String() string {
	switch p {
	case PriorityLowDefense:
		return "low-defense"
	case PriorityMidDefense:
		return "mid-defense"
	case PriorityOffense:
		return "offense"
	case PriorityHiDefense:
		return "hi-defense"
	case PriorityCrazyFan:
		return "crazy-fan"
	case PriorityReferee:
		return "referee"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Levels maps every Priority to a numeric scheduler level, indexed by
// Priority.
type Levels [numPriorities]int

// Bounds of SCHED_FIFO priorities on Linux.
const (
	MinLevel = 1
	MaxLevel = 99
)

// DefaultLevels returns the levels used by the classic sched_football test.
func DefaultLevels() Levels {
	return Levels{2, 3, 5, 10, 15, 20}
}

// Level returns the numeric level for p.
func (l Levels) Level(p Priority) int {
	return l[p]
}

// Validate checks that every level is in range and that levels strictly
// increase with priority.
func (l Levels) Validate() error {
	for p := PriorityLowDefense; p <= PriorityReferee; p++ {
		if l[p] < MinLevel || l[p] > MaxLevel {
			return fmt.Errorf("football: %s level %d out of range [%d, %d]", p, l[p], MinLevel, MaxLevel)
		}
		if p > PriorityLowDefense && l[p] <= l[p-1] {
			return fmt.Errorf("football: %s level %d must be above %s level %d", p, l[p], p-1, l[p-1])
		}
	}
	return nil
}
