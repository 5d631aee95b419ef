package metrics

import "github.com/DukeRupert/pager/internal/pagination"

// CompressionSucceeded records a successful compression and the shape of its output.
func CompressionSucceeded(format string, items []pagination.Item) {
	CompressionsTotal.WithLabelValues(format, "ok").Inc()
	CompressedItems.Observe(float64(len(items)))

	for _, it := range items {
		if it.IsPlaceholder() {
			PlaceholdersTotal.Inc()
		}
	}
}

// CompressionFailed records a rejected compression by error code.
func CompressionFailed(format, code string) {
	CompressionsTotal.WithLabelValues(format, code).Inc()
}
