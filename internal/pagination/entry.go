package pagination

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Defaults applied by Options.resolve.
const (
	DefaultPagerDelta   = 2
	DefaultEllipsisText = "…"
	DefaultEllipsis     = "datatable-ellipsis"
	DefaultActive       = "datatable-active"
)

// PageEntry is one page button owned by the caller. Compress only reads
// Number and clears Active; Handle is never touched.
type PageEntry struct {
	Number int
	Active bool
	Handle any
}

// Placeholder stands in for an elided run of pages.
type Placeholder struct {
	Label   string
	Classes string
	Handle  any
}

// Item is one position in a compressed pager. Exactly one of Entry and
// Placeholder is set.
type Item struct {
	Entry       *PageEntry
	Placeholder *Placeholder
}

// Page returns the page number of the item, or false for a placeholder.
func (it Item) Page() (int, bool) {
	if it.Entry == nil {
		return 0, false
	}
	return it.Entry.Number, true
}

// IsPlaceholder reports whether the item is an ellipsis.
func (it Item) IsPlaceholder() bool {
	return it.Placeholder != nil
}

// Classes are the style tags applied to pager entries.
type Classes struct {
	Ellipsis     string
	Active       string
	ListItem     string
	ListItemLink string
	Disabled     string
}

// Placeholder returns the merged class list for an ellipsis item.
func (c Classes) Placeholder() string {
	return twmerge.Merge(c.ListItem, c.Ellipsis, c.Disabled)
}

// Options configures Compress.
type Options struct {
	// PagerDelta is the half-width of the window kept around the current
	// page. Zero selects DefaultPagerDelta.
	PagerDelta   int
	Classes      Classes
	EllipsisText string
}

func (o Options) resolve() Options {
	if o.PagerDelta == 0 {
		o.PagerDelta = DefaultPagerDelta
	}
	if o.Classes == (Classes{}) {
		o.Classes = Classes{Ellipsis: DefaultEllipsis, Active: DefaultActive}
	}
	if o.EllipsisText == "" {
		o.EllipsisText = DefaultEllipsisText
	}
	return o
}

// EntryFactory builds the placeholder for a gap of more than one page.
// Every call must return a new value. A nil result is replaced with the
// DefaultFactory placeholder.
type EntryFactory interface {
	MakePlaceholder(label, classes string) *Placeholder
}

// FactoryFunc adapts a function to EntryFactory.
type FactoryFunc func(label, classes string) *Placeholder

func (f FactoryFunc) MakePlaceholder(label, classes string) *Placeholder {
	return f(label, classes)
}

// DefaultFactory returns bare placeholders with no render handle.
var DefaultFactory EntryFactory = FactoryFunc(func(label, classes string) *Placeholder {
	return &Placeholder{Label: label, Classes: classes}
})

// NewEntries returns one unrendered entry per page, numbered from 1.
func NewEntries(totalPages int) []*PageEntry {
	if totalPages < 0 {
		totalPages = 0
	}
	entries := make([]*PageEntry, totalPages)
	for i := range entries {
		entries[i] = &PageEntry{Number: i + 1}
	}
	return entries
}
