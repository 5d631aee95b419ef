package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DukeRupert/pager/internal/pagination"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/pager", "/pager"},
		{"/api/pager", "/api/pager"},
		{"/lists/42", "/lists/{id}"},
		{"/lists/42/pages/7", "/lists/{id}/pages/{id}"},
		{"/lists/1/2", "/lists/{id}/{id}"},
		{"/lists/3f1c2a9e-7b4d-4c1a-9f3e-2d5b6a7c8e9f", "/lists/{id}"},
		{"/v2/pager", "/v2/pager"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}

func TestMiddleware_RecordsRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/lists/{id}", "418"))

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/lists/99", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/lists/{id}", "418"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, float64(0), testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "200"))

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, before, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/metrics", "200")))
}

func TestCompressionSucceeded_CountsPlaceholders(t *testing.T) {
	items, err := pagination.Compress(pagination.NewEntries(20), 10, 20, pagination.Options{}, nil)
	require.NoError(t, err)

	okBefore := testutil.ToFloat64(CompressionsTotal.WithLabelValues("json", "ok"))
	phBefore := testutil.ToFloat64(PlaceholdersTotal)

	CompressionSucceeded("json", items)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(CompressionsTotal.WithLabelValues("json", "ok")))
	assert.Equal(t, phBefore+2, testutil.ToFloat64(PlaceholdersTotal))
}

func TestCompressionFailed(t *testing.T) {
	before := testutil.ToFloat64(CompressionsTotal.WithLabelValues("html", "invalid"))
	CompressionFailed("html", "invalid")
	assert.Equal(t, before+1, testutil.ToFloat64(CompressionsTotal.WithLabelValues("html", "invalid")))
}
