// Package pagination compresses a run of page buttons into the short control
// shown under list pages: first page, last page, a window around the current
// page and ellipsis placeholders in between.
package pagination

// Data contains pagination information for display.
type Data struct {
	CurrentPage int
	TotalPages  int
	PerPage     int
	Total       int
	HasPrevious bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

// NewData builds Data for a list of total items split into pages of perPage.
// An empty list still has one page. page is clamped into range here since it
// comes straight from a query string.
func NewData(page, perPage, total int) Data {
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Data{
		CurrentPage: page,
		TotalPages:  totalPages,
		PerPage:     perPage,
		Total:       total,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
}

// Ellipsis marks a placeholder position in PageRange output.
const Ellipsis = -1

// PageRange returns the page numbers to display for the given position,
// with Ellipsis for each elided run.
func PageRange(currentPage, totalPages, delta int) ([]int, error) {
	items, err := Compress(NewEntries(totalPages), currentPage, totalPages, Options{PagerDelta: delta}, nil)
	if err != nil {
		return nil, err
	}

	pages := make([]int, len(items))
	for i, it := range items {
		if n, ok := it.Page(); ok {
			pages[i] = n
		} else {
			pages[i] = Ellipsis
		}
	}
	return pages, nil
}
