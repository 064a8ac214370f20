package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

type fakeElasticsearch struct {
	docs    []models.Order
	methods []string
	queries []string
	fail    bool
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	if f.fail {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"unavailable"}`))
		return
	}

	switch {
	case r.URL.Path == "/orders/_doc":
		var o models.Order
		_ = json.NewDecoder(r.Body).Decode(&o)
		f.docs = append(f.docs, o)
		f.methods = append(f.methods, r.Method)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))

	case r.URL.Path == "/orders/_search":
		body, _ := io.ReadAll(r.Body)
		f.queries = append(f.queries, string(body))

		var q struct {
			Query struct {
				Match struct {
					Name struct {
						Query string `json:"query"`
					} `json:"name"`
				} `json:"match"`
			} `json:"query"`
		}
		_ = json.Unmarshal(body, &q)

		hits := make([]map[string]interface{}, 0)
		for _, o := range f.docs {
			// loose match, like an analyzed text field
			if strings.Contains(o.Name, q.Query.Match.Name.Query) {
				hits = append(hits, map[string]interface{}{"_source": o})
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{"hits": hits},
		})

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}
}

func newTestSearchIndex(t *testing.T, fake *fakeElasticsearch) *SearchIndex {
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return NewSearchIndex(client, "", logger.NewTestLogger(t))
}

func TestSearchIndex_IndexAndSearch(t *testing.T) {
	ctx := context.Background()
	fake := &fakeElasticsearch{}
	index := newTestSearchIndex(t, fake)

	require.NoError(t, index.Index(ctx, sampleOrder("١١١١١", "سامي")))
	require.NoError(t, index.Index(ctx, sampleOrder("٢٢٢٢٢", "سامي الحلبي")))
	require.NoError(t, index.Index(ctx, sampleOrder("٣٣٣٣٣", "خالد")))
	assert.Len(t, fake.docs, 3)
	assert.Equal(t, []string{http.MethodPost, http.MethodPost, http.MethodPost}, fake.methods)

	got, err := index.SearchByName(ctx, "سامي")
	require.NoError(t, err)

	require.Len(t, got, 1, "partial name hits are dropped")
	assert.Equal(t, "١١١١١", got[0].OrderID)
	require.Len(t, fake.queries, 1)
	assert.Contains(t, fake.queries[0], `"match"`)
}

func TestSearchIndex_CollidingIDKeepsBothOrders(t *testing.T) {
	ctx := context.Background()
	fake := &fakeElasticsearch{}
	index := newTestSearchIndex(t, fake)

	first := sampleOrder("١٢٣٤٥", "سامي")
	second := sampleOrder("١٢٣٤٥", "ليلى")
	require.NoError(t, index.Index(ctx, first))
	require.NoError(t, index.Index(ctx, second))
	require.Len(t, fake.docs, 2)

	got, err := index.SearchByName(ctx, "سامي")
	require.NoError(t, err)
	assert.Equal(t, []models.Order{first}, got)

	got, err = index.SearchByName(ctx, "ليلى")
	require.NoError(t, err)
	assert.Equal(t, []models.Order{second}, got)
}

func TestSearchIndex_Errors(t *testing.T) {
	ctx := context.Background()
	index := newTestSearchIndex(t, &fakeElasticsearch{fail: true})

	err := index.Index(ctx, sampleOrder("١١١١١", "سامي"))
	assert.ErrorIs(t, err, ErrIndexFailure)

	_, err = index.SearchByName(ctx, "سامي")
	assert.Error(t, err)
}
