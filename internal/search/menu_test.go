package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

type fakeES struct {
	mu       sync.Mutex
	requests []recorded
	handle   func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.handle(w, r)
}

func newIndex(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*MenuIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{handle: handle}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return &MenuIndex{ES: client, Index: "foods"}, fake
}

func TestSearchFoods(t *testing.T) {
	id := uuid.New()
	idx, fake := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{
			"id":"`+id.String()+`","name":"Es Teh","description":"manis","category":"drink","price":"5000","is_active":true}}]}}`)
	})

	total, foods, err := idx.SearchFoods(context.Background(), "teh", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, foods, 1)
	assert.Equal(t, id, foods[0].ID)
	assert.Equal(t, "Es Teh", foods[0].Name)
	assert.True(t, foods[0].Price.Equal(decimal.NewFromInt(5000)))
	require.NotNil(t, foods[0].Description)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "/foods/_search", req.Path)

	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &q))
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "teh", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
}

func TestSearchFoods_ErrorStatus(t *testing.T) {
	idx, _ := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"bad query"}`)
	})

	_, _, err := idx.SearchFoods(context.Background(), "x", 0, 10)
	require.Error(t, err)
}

func TestIndexAndDeleteFood(t *testing.T) {
	idx, fake := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	desc := "pedas"
	f := models.NewFood("Mie Goreng", &desc, decimal.RequireFromString("22000.50"), models.CategoryFood, true)
	require.NoError(t, idx.IndexFood(context.Background(), f))
	require.NoError(t, idx.DeleteFood(context.Background(), f.ID))

	require.Len(t, fake.requests, 2)
	assert.Equal(t, "/foods/_doc/"+f.ID.String(), fake.requests[0].Path)
	assert.True(t, strings.Contains(fake.requests[0].Body, `"price":"22000.5"`), fake.requests[0].Body)
	assert.Equal(t, http.MethodDelete, fake.requests[1].Method)
}

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	idx, fake := newIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, fake.requests, 2)
	assert.Equal(t, http.MethodPut, fake.requests[1].Method)
	assert.Contains(t, fake.requests[1].Body, "scaled_float")
}
