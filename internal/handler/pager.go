// Package handler contains HTTP handlers for the pager service.
package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/DukeRupert/pager/internal/domain"
	"github.com/DukeRupert/pager/internal/metrics"
	"github.com/DukeRupert/pager/internal/pagination"
	"github.com/DukeRupert/pager/internal/templ/components/pager"
	"github.com/a-h/templ"
	"golang.org/x/text/language"
)

// PagerConfig holds the defaults applied to every pager request.
type PagerConfig struct {
	Options       pagination.Options
	Locale        language.Tag
	MaxTotalPages int
}

// PagerHandler serves the compressed pagination control.
type PagerHandler struct {
	cfg    PagerConfig
	logger *slog.Logger
}

// NewPagerHandler creates a new pager handler.
func NewPagerHandler(cfg PagerConfig, logger *slog.Logger) *PagerHandler {
	return &PagerHandler{
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterRoutes registers the pager routes, wrapping each in mw.
func (h *PagerHandler) RegisterRoutes(mux *http.ServeMux, mw func(http.Handler) http.Handler) {
	mux.Handle("GET /pager", mw(http.HandlerFunc(h.Fragment)))
	mux.Handle("GET /api/pager", mw(http.HandlerFunc(h.JSON)))
}

// =============================================================================
// Request parsing
// =============================================================================

// pagerRequest is the parsed query of a pager request.
type pagerRequest struct {
	Page     int
	Total    int
	Delta    int
	BaseURL  string
	TargetID string
	PushURL  bool
}

// parsePagerRequest reads page, total and the optional delta, base, target
// and push parameters. page and total are required and never clamped.
func (h *PagerHandler) parsePagerRequest(r *http.Request, op string) (pagerRequest, error) {
	q := r.URL.Query()
	req := pagerRequest{
		Delta:    h.cfg.Options.PagerDelta,
		BaseURL:  q.Get("base"),
		TargetID: q.Get("target"),
		PushURL:  q.Get("push") == "1" || q.Get("push") == "true",
	}

	var err error
	if req.Page, err = requiredInt(q.Get("page"), "page", op); err != nil {
		return req, err
	}
	if req.Total, err = requiredInt(q.Get("total"), "total", op); err != nil {
		return req, err
	}
	if v := q.Get("delta"); v != "" {
		if req.Delta, err = strconv.Atoi(v); err != nil {
			return req, domain.InvalidParam(op, "delta", v)
		}
	}

	if req.Total > h.cfg.MaxTotalPages {
		return req, domain.Invalid(op, "total exceeds the maximum of "+strconv.Itoa(h.cfg.MaxTotalPages)+" pages")
	}
	// Links must stay on this site.
	if req.BaseURL != "" && (!strings.HasPrefix(req.BaseURL, "/") || strings.HasPrefix(req.BaseURL, "//")) {
		return req, domain.Invalid(op, "base must be a site-relative path")
	}

	return req, nil
}

func requiredInt(value, name, op string) (int, error) {
	if value == "" {
		return 0, domain.Invalid(op, name+" is required")
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, domain.InvalidParam(op, name, value)
	}
	return n, nil
}

func (h *PagerHandler) renderConfig(req pagerRequest) pager.Config {
	opts := h.cfg.Options
	opts.PagerDelta = req.Delta

	return pager.Config{
		BaseURL:  req.BaseURL,
		TargetID: req.TargetID,
		UseHtmx:  req.BaseURL != "",
		PushURL:  req.PushURL,
		Locale:   h.cfg.Locale,
		Options:  opts,
	}
}

// fail records and writes an error for a pager request.
func (h *PagerHandler) fail(w http.ResponseWriter, r *http.Request, format, op string, err error) {
	if domain.ErrorCode(err) == domain.EINVALID {
		err = domain.Wrap(err, domain.EINVALID, op, domain.ErrorMessage(err))
	}
	metrics.CompressionFailed(format, domain.ErrorCode(err))
	ErrorResponse(w, r, h.logger, err)
}

// =============================================================================
// HTML fragment
// =============================================================================

// Fragment renders the pager as an HTML fragment for htmx swaps.
func (h *PagerHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	const op = "pager.fragment"

	req, err := h.parsePagerRequest(r, op)
	if err != nil {
		h.fail(w, r, "html", op, err)
		return
	}

	cfg := h.renderConfig(req)
	items, err := pager.Build(req.Page, req.Total, cfg)
	if err != nil {
		h.fail(w, r, "html", op, err)
		return
	}
	metrics.CompressionSucceeded("html", items)

	h.writeHTML(w, r, pager.Nav(items, cfg))
}

// writeHTML renders c in full before writing, so a render failure yields a
// clean error response instead of a truncated fragment.
func (h *PagerHandler) writeHTML(w http.ResponseWriter, r *http.Request, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// =============================================================================
// JSON
// =============================================================================

// ItemJSON is one position of the pager in API responses.
type ItemJSON struct {
	Page     int    `json:"page,omitempty"`
	Label    string `json:"label"`
	Active   bool   `json:"active,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
}

// PagerResponse is the body of GET /api/pager.
type PagerResponse struct {
	CurrentPage int        `json:"current_page"`
	TotalPages  int        `json:"total_pages"`
	Items       []ItemJSON `json:"items"`
}

// JSON returns the compressed pager as a list of items.
func (h *PagerHandler) JSON(w http.ResponseWriter, r *http.Request) {
	const op = "pager.json"

	req, err := h.parsePagerRequest(r, op)
	if err != nil {
		h.fail(w, r, "json", op, err)
		return
	}

	cfg := h.renderConfig(req)
	items, err := pager.Build(req.Page, req.Total, cfg)
	if err != nil {
		h.fail(w, r, "json", op, err)
		return
	}
	metrics.CompressionSucceeded("json", items)

	resp := PagerResponse{
		CurrentPage: req.Page,
		TotalPages:  req.Total,
		Items:       make([]ItemJSON, 0, len(items)),
	}
	for _, it := range items {
		if it.IsPlaceholder() {
			resp.Items = append(resp.Items, ItemJSON{Label: it.Placeholder.Label, Ellipsis: true})
			continue
		}
		label, _ := it.Entry.Handle.(string)
		resp.Items = append(resp.Items, ItemJSON{
			Page:   it.Entry.Number,
			Label:  label,
			Active: it.Entry.Active,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode pager response", "error", err)
	}
}
