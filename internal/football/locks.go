package football

import (
	"fmt"

	"github.com/Iron-Ham/schedfootball/internal/sched"
)

// IndexMapping decides which mid lock each mid defender takes.
type IndexMapping string

const (
	// MappingSame chains mid defender i to Mid[i] and Low[i].
	MappingSame IndexMapping = "same"
	// MappingReversed chains mid defender i to Mid[n-1-i] and Low[i], so
	// high defender i ends up waiting on low defender n-1-i.
	MappingReversed IndexMapping = "reversed"
)

// ValidIndexMappings returns the list of valid index mapping names.
func ValidIndexMappings() []string {
	return []string{string(MappingSame), string(MappingReversed)}
}

// ParseIndexMapping converts a mapping name into an IndexMapping.
func ParseIndexMapping(s string) (IndexMapping, error) {
	switch IndexMapping(s) {
	case MappingSame, MappingReversed:
		return IndexMapping(s), nil
	default:
		return "", fmt.Errorf("football: unknown index mapping %q", s)
	}
}

// midIndex returns the Mid slot taken by mid defender i of n.
func (m IndexMapping) midIndex(i, n int) int {
	if m == MappingReversed {
		return n - 1 - i
	}
	return i
}

// LockPool holds the two rows of locks the defense fights over. Slot i of
// each row is owned by exactly one defender at steady state.
type LockPool struct {
	Low []sched.Lock
	Mid []sched.Lock
}

// NewLockPool allocates n low and n mid locks of the given kind.
func NewLockPool(kind sched.LockKind, n int) (*LockPool, error) {
	low, err := sched.NewLocks(kind, n)
	if err != nil {
		return nil, fmt.Errorf("%w: low locks: %w", ErrLockPool, err)
	}
	mid, err := sched.NewLocks(kind, n)
	if err != nil {
		return nil, fmt.Errorf("%w: mid locks: %w", ErrLockPool, err)
	}
	return &LockPool{Low: low, Mid: mid}, nil
}
