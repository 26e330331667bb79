package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/foodshare/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

type listingDoc struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	Description   string    `json:"description"`
	PickupAddress string    `json:"pickup_address"`
	BoxOption     string    `json:"box_option"`
	FoodTypes     []string  `json:"food_types"`
	Ingredients   []string  `json:"ingredients"`
	Notes         string    `json:"notes"`
	ImageRef      string    `json:"image_ref,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toDoc(l *entity.FoodListing) listingDoc {
	return listingDoc{
		ID:            l.ID,
		UserID:        l.OwnerUserID,
		Description:   l.Description,
		PickupAddress: l.PickupAddress,
		BoxOption:     string(l.BoxOption),
		FoodTypes:     l.FoodTypes,
		Ingredients:   l.Ingredients,
		Notes:         l.Notes,
		ImageRef:      l.ImageRef,
		CreatedAt:     l.CreatedAt,
	}
}

func (d listingDoc) toEntity() entity.FoodListing {
	return entity.FoodListing{
		ID:            d.ID,
		OwnerUserID:   d.UserID,
		Description:   d.Description,
		PickupAddress: d.PickupAddress,
		BoxOption:     entity.BoxOption(d.BoxOption),
		FoodTypes:     d.FoodTypes,
		Ingredients:   d.Ingredients,
		Notes:         d.Notes,
		ImageRef:      d.ImageRef,
		CreatedAt:     d.CreatedAt,
	}
}

// ListingIndex mirrors active listings into Elasticsearch for browsing.
// A nil client turns every call into a no-op.
type ListingIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewListingIndex(es *elasticsearch.Client, index string) *ListingIndex {
	return &ListingIndex{es: es, index: index}
}

func (x *ListingIndex) enabled() bool {
	return x != nil && x.es != nil && x.index != ""
}

func (x *ListingIndex) Index(ctx context.Context, l *entity.FoodListing) error {
	if !x.enabled() {
		return nil
	}
	b, err := json.Marshal(toDoc(l))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(l.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *ListingIndex) Remove(ctx context.Context, id int64) error {
	if !x.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: x.index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	// 404 means it was never indexed
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over description, food types, ingredients and address.
func (x *ListingIndex) Search(ctx context.Context, q string, size int) ([]entity.FoodListing, error) {
	if !x.enabled() {
		return []entity.FoodListing{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	var query map[string]any
	if q == "" {
		query = map[string]any{
			"query": map[string]any{"match_all": map[string]any{}},
			"sort":  []any{map[string]any{"created_at": "desc"}},
			"size":  size,
		}
	} else {
		query = map[string]any{
			"query": map[string]any{
				"multi_match": map[string]any{
					"query":  q,
					"fields": []string{"description^2", "food_types^2", "ingredients", "pickup_address", "notes"},
				},
			},
			"size": size,
		}
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == 404 {
			return []entity.FoodListing{}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source listingDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode es search: %w", err)
	}

	out := make([]entity.FoodListing, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.toEntity())
	}
	return out, nil
}
