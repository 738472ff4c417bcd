package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"expohall/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type Config struct {
	URL        string
	Username   string
	Password   string
	Index      string
	MaxRetries int
	Enabled    bool
}

// EventDoc is the indexed projection of an event used for full-text search
// over title, description and theme.
type EventDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
}

// ElasticsearchClient представляет клиент для работы с Elasticsearch
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config Config
}

// NewElasticsearchClient создает новый клиент Elasticsearch
func NewElasticsearchClient(cfg Config) (*ElasticsearchClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{client: es, config: cfg}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

// ensureIndex создает индекс если он не существует
func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":          map[string]interface{}{"type": "keyword"},
				"title":       map[string]interface{}{"type": "text"},
				"description": map[string]interface{}{"type": "text"},
				"theme": map[string]interface{}{
					"type": "text",
					"fields": map[string]interface{}{
						"keyword": map[string]interface{}{
							"type":         "keyword",
							"ignore_above": 256,
						},
					},
				},
				"date_from": map[string]interface{}{"type": "date", "format": "yyyy-MM-dd"},
				"date_to":   map[string]interface{}{"type": "date", "format": "yyyy-MM-dd"},
			},
		},
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal index mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  bytes.NewReader(body),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("index creation returned error: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

// IndexEvent индексирует событие (создание и обновление)
func (c *ElasticsearchClient) IndexEvent(ctx context.Context, event *models.Event) error {
	doc := EventDoc{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Theme:       event.Theme,
		DateFrom:    event.DateFrom.Format("2006-01-02"),
		DateTo:      event.DateTo.Format("2006-01-02"),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal event doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: event.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index event: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing returned error: %s", res.String())
	}
	return nil
}

// DeleteEvent удаляет событие из индекса
func (c *ElasticsearchClient) DeleteEvent(ctx context.Context, eventID string) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: eventID,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete event from index: %w", err)
	}
	defer res.Body.Close()

	// 404 means it was never indexed, which is fine
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("index deletion returned error: %s", res.String())
	}
	return nil
}

// SearchEvents ищет события по строке запроса и возвращает их идентификаторы
func (c *ElasticsearchClient) SearchEvents(ctx context.Context, query string, size int) ([]string, error) {
	searchBody := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "theme", "description"},
				"fuzziness": "AUTO",
			},
		},
	}

	body, err := json.Marshal(searchBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search body: %w", err)
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.config.Index),
		c.client.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search returned error: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source EventDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
