package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuIndex mirrors the food catalog into an Elasticsearch index.
type MenuIndex struct {
	ES    *elasticsearch.Client
	Index string
}

type foodDoc struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    models.FoodCategory `json:"category"`
	Price       string              `json:"price"`
	IsActive    bool                `json:"is_active"`
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "name":        {"type": "text"},
      "description": {"type": "text"},
      "category":    {"type": "keyword"},
      "price":       {"type": "scaled_float", "scaling_factor": 100},
      "is_active":   {"type": "boolean"}
    }
  }
}`

func (m *MenuIndex) EnsureIndex(ctx context.Context) error {
	res, err := m.ES.Indices.Exists([]string{m.Index}, m.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = m.ES.Indices.Create(m.Index,
		m.ES.Indices.Create.WithContext(ctx),
		m.ES.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return checkResponse(res.StatusCode, res.IsError(), res.Body, "create index")
}

func (m *MenuIndex) IndexFood(ctx context.Context, f models.Food) error {
	doc := foodDoc{
		ID:       f.ID,
		Name:     f.Name,
		Category: f.Category,
		Price:    f.Price.String(),
		IsActive: f.IsActive,
	}
	if f.Description != nil {
		doc.Description = *f.Description
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encode food: %w", err)
	}

	res, err := m.ES.Index(m.Index, &buf,
		m.ES.Index.WithContext(ctx),
		m.ES.Index.WithDocumentID(f.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("index food: %w", err)
	}
	return checkResponse(res.StatusCode, res.IsError(), res.Body, "index food")
}

func (m *MenuIndex) DeleteFood(ctx context.Context, id uuid.UUID) error {
	res, err := m.ES.Delete(m.Index, id.String(), m.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil
	}
	return checkResponse(res.StatusCode, res.IsError(), res.Body, "delete food")
}

// SearchFoods runs a fuzzy multi_match over name and description, name weighted double.
func (m *MenuIndex) SearchFoods(ctx context.Context, q string, offset, limit int) (int64, []models.Food, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": offset,
		"size": limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := m.ES.Search(
		m.ES.Search.WithContext(ctx),
		m.ES.Search.WithIndex(m.Index),
		m.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search: %s: %s", res.Status(), msg)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source foodDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	foods := make([]models.Food, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		foods = append(foods, hit.Source.food())
	}
	return r.Hits.Total.Value, foods, nil
}

func (d foodDoc) food() models.Food {
	f := models.Food{
		ID:       d.ID,
		Name:     d.Name,
		Category: d.Category,
		IsActive: d.IsActive,
	}
	if d.Description != "" {
		desc := d.Description
		f.Description = &desc
	}
	if p, err := decimal.NewFromString(d.Price); err == nil {
		f.Price = p
	}
	return f
}

func checkResponse(status int, isError bool, body io.ReadCloser, op string) error {
	defer body.Close()
	if isError {
		msg, _ := io.ReadAll(body)
		return fmt.Errorf("%s: status %d: %s", op, status, msg)
	}
	return nil
}
