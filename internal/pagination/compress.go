package pagination

// Window returns the page bounds kept around currentPage. Near either end of
// the range the window is pinned so the control keeps a constant width; the
// bounds may fall outside [1, totalPages]. A delta above totalPages already
// covers every page and is reduced to totalPages.
func Window(currentPage, totalPages, delta int) (lower, upper int) {
	if totalPages >= 0 && delta > totalPages {
		delta = totalPages
	}
	width := 2 * delta
	lower = currentPage - delta
	upper = currentPage + delta

	if currentPage < 4-delta+width {
		upper = 3 + width
	} else if currentPage > totalPages-(3-delta+width) {
		lower = totalPages - (2 + width)
	}
	return lower, upper
}

// Compress truncates a full run of page entries down to the first page, the
// last page and a window around currentPage. Gaps of a single page are filled
// with that page; longer gaps get one placeholder from factory (DefaultFactory
// when nil).
//
// Every kept entry has Active cleared. Marking the current page again is left
// to the caller.
func Compress(entries []*PageEntry, currentPage, totalPages int, opts Options, factory EntryFactory) ([]Item, error) {
	if opts.PagerDelta < 0 {
		return nil, &InvalidRangeError{Bound: BoundPagerDelta, CurrentPage: currentPage, TotalPages: totalPages, Delta: opts.PagerDelta}
	}
	opts = opts.resolve()

	if err := validate(entries, currentPage, totalPages, opts.PagerDelta); err != nil {
		return nil, err
	}
	if factory == nil {
		factory = DefaultFactory
	}

	delta := min(opts.PagerDelta, totalPages)
	lower, upper := Window(currentPage, totalPages, delta)

	kept := make([]*PageEntry, 0, min(totalPages, 2*delta+3))
	for k := 1; k <= totalPages; k++ {
		if k == 1 || k == totalPages || (k >= lower && k <= upper) {
			entry := entries[k-1]
			entry.Active = false
			kept = append(kept, entry)
		}
	}

	items := make([]Item, 0, len(kept)+2)
	prev := 0
	for _, entry := range kept {
		if prev > 0 {
			switch gap := entry.Number - prev; {
			case gap == 2:
				items = append(items, Item{Entry: entries[prev]})
			case gap != 1:
				items = append(items, Item{Placeholder: makePlaceholder(factory, opts)})
			}
		}
		items = append(items, Item{Entry: entry})
		prev = entry.Number
	}

	return items, nil
}

// makePlaceholder asks factory for a placeholder, falling back to
// DefaultFactory when it returns nil.
func makePlaceholder(factory EntryFactory, opts Options) *Placeholder {
	label, classes := opts.EllipsisText, opts.Classes.Placeholder()
	if ph := factory.MakePlaceholder(label, classes); ph != nil {
		return ph
	}
	return DefaultFactory.MakePlaceholder(label, classes)
}

func validate(entries []*PageEntry, currentPage, totalPages, delta int) error {
	switch {
	case totalPages < 1:
		return &InvalidRangeError{Bound: BoundTotalPages, CurrentPage: currentPage, TotalPages: totalPages, Delta: delta}
	case currentPage < 1:
		return &InvalidRangeError{Bound: BoundCurrentMin, CurrentPage: currentPage, TotalPages: totalPages, Delta: delta}
	case currentPage > totalPages:
		return &InvalidRangeError{Bound: BoundCurrentMax, CurrentPage: currentPage, TotalPages: totalPages, Delta: delta}
	}

	if len(entries) != totalPages {
		return &EntryCountMismatchError{Entries: len(entries), TotalPages: totalPages, Index: -1}
	}
	for i, entry := range entries {
		if entry == nil || entry.Number != i+1 {
			return &EntryCountMismatchError{Entries: len(entries), TotalPages: totalPages, Index: i}
		}
	}
	return nil
}
