package pagination

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange matches any *InvalidRangeError via errors.Is.
	ErrInvalidRange = errors.New("invalid page range")

	// ErrEntryCountMismatch matches any *EntryCountMismatchError via errors.Is.
	ErrEntryCountMismatch = errors.New("entry count mismatch")
)

// Bounds reported by InvalidRangeError.
const (
	BoundTotalPages = "totalPages"
	BoundCurrentMin = "currentPage>=1"
	BoundCurrentMax = "currentPage<=totalPages"
	BoundPagerDelta = "pagerDelta"
)

// InvalidRangeError reports a current page, total page count or delta outside
// its allowed bounds. Values are never clamped.
type InvalidRangeError struct {
	Bound       string
	CurrentPage int
	TotalPages  int
	Delta       int
}

func (e *InvalidRangeError) Error() string {
	switch e.Bound {
	case BoundTotalPages:
		return fmt.Sprintf("invalid page range: total pages must be at least 1, got %d", e.TotalPages)
	case BoundCurrentMin:
		return fmt.Sprintf("invalid page range: current page must be at least 1, got %d", e.CurrentPage)
	case BoundCurrentMax:
		return fmt.Sprintf("invalid page range: current page %d exceeds total pages %d", e.CurrentPage, e.TotalPages)
	case BoundPagerDelta:
		return fmt.Sprintf("invalid page range: pager delta must not be negative, got %d", e.Delta)
	default:
		return fmt.Sprintf("invalid page range: %s (current=%d total=%d)", e.Bound, e.CurrentPage, e.TotalPages)
	}
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// EntryCountMismatchError reports an entry sequence that does not line up
// one-to-one with the pages 1..TotalPages.
type EntryCountMismatchError struct {
	Entries    int
	TotalPages int
	// Index is the first misplaced entry, or -1 when only the length is wrong.
	Index int
}

func (e *EntryCountMismatchError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("entry count mismatch: entry at index %d is not page %d", e.Index, e.Index+1)
	}
	return fmt.Sprintf("entry count mismatch: got %d entries for %d pages", e.Entries, e.TotalPages)
}

func (e *EntryCountMismatchError) Is(target error) bool {
	return target == ErrEntryCountMismatch
}
