// Package index mirrors stored jobs into Elasticsearch for full-text keyword
// search. The relational store stays authoritative; the mirror is optional
// and the API falls back to the store's substring search without it.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/project-rsd/go-jobagent/internal/domain"
)

// Elasticsearch indexes jobs into a single index and answers keyword queries.
type Elasticsearch struct {
	client    *elasticsearch.Client
	indexName string
}

// NewElasticsearch creates the mirror and verifies the connection.
func NewElasticsearch(addresses []string, indexName string) (*Elasticsearch, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &Elasticsearch{client: client, indexName: indexName}, nil
}

// EnsureIndex creates the index with field mappings if it doesn't exist.
func (e *Elasticsearch) EnsureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.indexName})
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"title": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
				"company": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
				"location": {"type": "text"},
				"url": {"type": "keyword"},
				"date_posted": {"type": "keyword"},
				"source": {"type": "keyword"},
				"salary": {"type": "keyword"},
				"employment_type": {"type": "keyword"},
				"is_remote": {"type": "boolean"},
				"experience_level": {"type": "keyword"},
				"apply_deadline": {"type": "keyword"},
				"description": {"type": "text"},
				"score": {"type": "integer"}
			}
		}
	}`

	res, err = e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithContext(ctx),
		e.client.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}

	return nil
}

// BulkIndex indexes jobs keyed by their store ID.
func (e *Elasticsearch) BulkIndex(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, job := range jobs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": e.indexName,
				"_id":    strconv.FormatInt(job.ID, 10),
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(job)
		if err != nil {
			log.Printf("marshal job %d: %v", job.ID, err)
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := e.client.Bulk(bytes.NewReader(buf.Bytes()), e.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}
	return nil
}

// Search runs a multi-field match over title, company and description,
// ranked by score then relevance.
func (e *Elasticsearch) Search(ctx context.Context, keyword string) ([]domain.Job, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  keyword,
				"fields": []string{"title^2", "company", "description"},
			},
		},
		"sort": []any{
			map[string]any{"score": map[string]any{"order": "desc"}},
			"_score",
		},
		"size": 200,
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{e.indexName},
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.Status())
	}

	var searchRes struct {
		Hits struct {
			Hits []struct {
				Source domain.Job `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchRes); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	jobs := make([]domain.Job, 0, len(searchRes.Hits.Hits))
	for _, hit := range searchRes.Hits.Hits {
		jobs = append(jobs, hit.Source)
	}
	return jobs, nil
}
