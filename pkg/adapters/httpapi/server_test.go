package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepedge/concierge"
	"github.com/stepedge/concierge/pkg/adapters/httpapi"
	"github.com/stepedge/concierge/pkg/catalog"
	"github.com/stepedge/concierge/pkg/domain"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cat := catalog.New([]domain.Product{
		{ID: 1, Name: "Dell XPS 13", Category: "Laptop", Brand: "Dell", Price: 1299.99, Specifications: "16GB RAM", Features: "thin bezel", UserReviews: "great", PopularityScore: 93},
		{ID: 2, Name: "Sony WH-1000XM5", Category: "Headphones", Brand: "Sony", Price: 399.99, Specifications: "30h battery", Features: "noise cancelling", UserReviews: "superb", PopularityScore: 96},
	})
	advisor, err := concierge.New(cat)
	require.NoError(t, err)
	return httpapi.NewHandler(advisor)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Health(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestHandler_ChatFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/chat", concierge.TurnRequest{Message: "laptop"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp concierge.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, resp.Reply, "Which brand do you prefer")

	// Second turn against the same session.
	rec = postJSON(t, h, "/chat", concierge.TurnRequest{SessionID: resp.SessionID, Message: "dell"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "What's your budget range")
}

func TestHandler_ChatValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Sessions(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.SessionID)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.SessionID)

	req = httptest.NewRequest(http.MethodDelete, "/sessions/"+created.SessionID, nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_Products(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/products?category=laptop", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Dell XPS 13", products[0].Name)
}

func TestHandler_ProductByID(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/products/2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sony WH-1000XM5")

	req = httptest.NewRequest(http.MethodGet, "/products/99", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Search(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h, "/search", httpapi.SearchRequest{Query: "noise cancelling headphones"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpapi.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "Sony WH-1000XM5", resp.Matches[0].Product.Name)
	assert.Equal(t, "What is your budget range?", resp.NextQuestion)

	rec = postJSON(t, h, "/search", httpapi.SearchRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CORS(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_Metrics(t *testing.T) {
	cat := catalog.New([]domain.Product{
		{ID: 1, Name: "Dell XPS 13", Category: "Laptop", Brand: "Dell", Price: 1299.99, PopularityScore: 93},
	})
	advisor, err := concierge.New(cat)
	require.NoError(t, err)

	h := httpapi.NewHandler(advisor, httpapi.WithMetricsRegistry(prometheus.NewRegistry()))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
