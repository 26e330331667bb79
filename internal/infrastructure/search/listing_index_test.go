package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

func fakeES(t *testing.T, status int, reply string) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &calls
}

func TestListingIndex_Index(t *testing.T) {
	es, calls := fakeES(t, http.StatusCreated, `{"result":"created"}`)
	idx := NewListingIndex(es, "food_listings")

	l := &entity.FoodListing{ID: 7, OwnerUserID: "u-1", Description: "lentil soup", BoxOption: entity.BoxNeed, CreatedAt: time.Now()}
	require.NoError(t, idx.Index(context.Background(), l))

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, http.MethodPut, c.method)
	assert.Equal(t, "/food_listings/_doc/7", c.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(c.body), &doc))
	assert.Equal(t, "lentil soup", doc["description"])
	assert.Equal(t, "u-1", doc["user_id"])
}

func TestListingIndex_RemoveMissingIsFine(t *testing.T) {
	es, calls := fakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	idx := NewListingIndex(es, "food_listings")

	require.NoError(t, idx.Remove(context.Background(), 7))
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
}

func TestListingIndex_Search(t *testing.T) {
	reply := `{"hits":{"hits":[{"_id":"7","_source":{"id":7,"user_id":"u-1","description":"lentil soup","box_option":"need","food_types":["soup"]}}]}}`
	es, calls := fakeES(t, http.StatusOK, reply)
	idx := NewListingIndex(es, "food_listings")

	got, err := idx.Search(context.Background(), "soup", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, entity.BoxNeed, got[0].BoxOption)
	assert.Equal(t, []string{"soup"}, got[0].FoodTypes)

	assert.True(t, strings.HasSuffix((*calls)[0].path, "/_search"))
	assert.Contains(t, (*calls)[0].body, `"size":10`)
	assert.Contains(t, (*calls)[0].body, "multi_match")
}

func TestListingIndex_Disabled(t *testing.T) {
	idx := NewListingIndex(nil, "food_listings")
	assert.NoError(t, idx.Index(context.Background(), &entity.FoodListing{ID: 1}))
	assert.NoError(t, idx.Remove(context.Background(), 1))
	got, err := idx.Search(context.Background(), "x", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
