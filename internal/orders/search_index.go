package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"voice-order-workers/internal/common/logger"
	"voice-order-workers/internal/models"
)

const (
	DefaultSearchIndex = "orders"
	searchPageSize     = 100
)

// SearchIndex mirrors committed orders into Elasticsearch so they can be
// found by customer name.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewSearchIndex(client *elasticsearch.Client, index string, log logger.Logger) *SearchIndex {
	if index == "" {
		index = DefaultSearchIndex
	}
	return &SearchIndex{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"index": index}),
	}
}

// Index adds the order as a new document. Elasticsearch assigns the
// document id, so orders sharing an order id are all kept.
func (s *SearchIndex) Index(ctx context.Context, order models.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailure, err)
	}

	req := esapi.IndexRequest{
		Index:   s.index,
		Body:    bytes.NewReader(body),
		Refresh: "true",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailure, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrIndexFailure, res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Order `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchByName returns orders whose customer name matches name exactly.
func (s *SearchIndex) SearchByName(ctx context.Context, name string) ([]models.Order, error) {
	query := map[string]interface{}{
		"size": searchPageSize,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"name": map[string]interface{}{
					"query":    name,
					"operator": "and",
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search orders: %s", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]models.Order, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if hit.Source.Name == name {
			out = append(out, hit.Source)
		}
	}
	s.logger.Debug("order search finished", map[string]interface{}{
		"hits":    len(parsed.Hits.Hits),
		"matched": len(out),
	})
	return out, nil
}
