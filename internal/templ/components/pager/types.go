// Package pager renders the compressed pagination control shared by list pages.
package pager

import (
	"fmt"
	"strings"

	"github.com/DukeRupert/pager/internal/pagination"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Config allows customization of pager rendering.
type Config struct {
	BaseURL  string // e.g., "/clients"; empty renders href="#"
	TargetID string // htmx target, e.g., "content-area"
	UseHtmx  bool   // Enable htmx partial loading
	PushURL  bool   // Update browser URL with hx-push-url

	Locale  language.Tag // Number formatting for page labels
	Options pagination.Options
}

// classes returns the configured classes, falling back to the defaults used
// by pagination.Compress.
func (c Config) classes() pagination.Classes {
	if c.Options.Classes == (pagination.Classes{}) {
		return pagination.Classes{
			Ellipsis: pagination.DefaultEllipsis,
			Active:   pagination.DefaultActive,
		}
	}
	return c.Options.Classes
}

func (c Config) printer() *message.Printer {
	tag := c.Locale
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Label formats a page number for display.
func (c Config) Label(page int) string {
	return c.printer().Sprintf("%d", page)
}

// PageURL returns the link target for page, or "#" without a BaseURL.
func (c Config) PageURL(page int) string {
	if c.BaseURL == "" {
		return "#"
	}
	sep := "?"
	if strings.Contains(c.BaseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", c.BaseURL, sep, page)
}
