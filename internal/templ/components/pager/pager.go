package pager

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/DukeRupert/pager/internal/pagination"
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// ListItem renders a single page button:
//
//	<li class="..."><a href="#" class="..." data-page="N">text</a></li>
func ListItem(className, linkClassName string, page int, text string, cfg Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		href := cfg.PageURL(page)

		var b strings.Builder
		b.WriteString("<li")
		writeAttr(&b, "class", className)
		b.WriteString("><a")
		writeAttr(&b, "href", string(templ.URL(href)))
		writeAttr(&b, "class", linkClassName)
		writeAttr(&b, "data-page", strconv.Itoa(page))
		if cfg.UseHtmx && cfg.BaseURL != "" {
			writeAttr(&b, "hx-get", href)
			if cfg.TargetID != "" {
				writeAttr(&b, "hx-target", "#"+cfg.TargetID)
			}
			if cfg.PushURL {
				writeAttr(&b, "hx-push-url", "true")
			}
		}
		b.WriteString(">")
		b.WriteString(templ.EscapeString(text))
		b.WriteString("</a></li>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Placeholder renders an ellipsis item. It has no link target.
func Placeholder(className, linkClassName, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<li")
		writeAttr(&b, "class", className)
		b.WriteString("><a")
		writeAttr(&b, "class", linkClassName)
		b.WriteString(">")
		b.WriteString(templ.EscapeString(text))
		b.WriteString("</a></li>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Factory builds placeholders carrying a rendered templ.Component handle.
type Factory struct {
	LinkClass string
}

// MakePlaceholder implements pagination.EntryFactory.
func (f Factory) MakePlaceholder(label, classes string) *pagination.Placeholder {
	return &pagination.Placeholder{
		Label:   label,
		Classes: classes,
		Handle:  Placeholder(classes, f.LinkClass, label),
	}
}

// Build compresses the pager for currentPage. Each returned page entry holds
// its formatted label in Handle, and the entry for currentPage is marked
// active again after compression.
func Build(currentPage, totalPages int, cfg Config) ([]pagination.Item, error) {
	entries := pagination.NewEntries(totalPages)
	p := cfg.printer()
	for _, e := range entries {
		e.Handle = p.Sprintf("%d", e.Number)
		e.Active = e.Number == currentPage
	}

	opts := cfg.Options
	opts.Classes = cfg.classes()
	items, err := pagination.Compress(entries, currentPage, totalPages, opts, Factory{LinkClass: opts.Classes.ListItemLink})
	if err != nil {
		return nil, err
	}

	// Compress clears every kept entry.
	entries[currentPage-1].Active = true
	return items, nil
}

// Nav renders compressed items as a <nav><ul> list.
func Nav(items []pagination.Item, cfg Config) templ.Component {
	classes := cfg.classes()

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav aria-label="Pagination"><ul class="datatable-pagination-list">`); err != nil {
			return err
		}

		for _, it := range items {
			if err := itemComponent(it, classes, cfg).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</ul></nav>")
		return err
	})
}

// Render builds and renders the pager in one step.
func Render(currentPage, totalPages int, cfg Config) (templ.Component, error) {
	items, err := Build(currentPage, totalPages, cfg)
	if err != nil {
		return nil, err
	}
	return Nav(items, cfg), nil
}

func itemComponent(it pagination.Item, classes pagination.Classes, cfg Config) templ.Component {
	if it.Placeholder != nil {
		if c, ok := it.Placeholder.Handle.(templ.Component); ok {
			return c
		}
		return Placeholder(it.Placeholder.Classes, classes.ListItemLink, it.Placeholder.Label)
	}

	entry := it.Entry
	label, ok := entry.Handle.(string)
	if !ok {
		label = cfg.Label(entry.Number)
	}

	className := classes.ListItem
	if entry.Active {
		className = twmerge.Merge(classes.ListItem, classes.Active)
	}
	return ListItem(className, classes.ListItemLink, entry.Number, label, cfg)
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(templ.EscapeString(value))
	b.WriteString(`"`)
}
