package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/riftline/guidecrawl/internal/config"
	"github.com/riftline/guidecrawl/internal/logger"
)

// esDocument is the indexed shape of a content record.
type esDocument struct {
	ContentRecord
	CreatedAt time.Time `json:"created_at"`
}

// ElasticStore is a RecordStore backed by Elasticsearch. The record slug is
// used as the document ID and documents are indexed with op_type=create, so
// the uniqueness check is atomic on the storage side: a concurrent create
// for the same slug loses with a version conflict.
type ElasticStore struct {
	client *es.Client
	index  string
	logger logger.Interface
}

var _ RecordStore = (*ElasticStore)(nil)

// NewElasticStore creates a record store from the Elasticsearch configuration
// and verifies connectivity.
func NewElasticStore(cfg *config.ElasticsearchConfig, log logger.Interface) (*ElasticStore, error) {
	clientConfig := es.Config{
		Addresses: cfg.Addresses,
	}
	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	} else if cfg.Username != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	log.Debug("Connected to Elasticsearch", "addresses", cfg.Addresses, "index", cfg.Index)

	return &ElasticStore{
		client: client,
		index:  cfg.Index,
		logger: log,
	}, nil
}

// Create indexes the record with its slug as document ID. A conflict response
// means the slug already exists and is reported as ErrDuplicateSlug.
func (s *ElasticStore) Create(ctx context.Context, record *ContentRecord) (*PersistedRecord, error) {
	now := time.Now().UTC()

	payload, err := json.Marshal(esDocument{ContentRecord: *record, CreatedAt: now})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	req := esapi.CreateRequest{
		Index:      s.index,
		DocumentID: record.Slug,
		Body:       bytes.NewReader(payload),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("failed to create record %s: %w", record.Slug, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusConflict {
		return nil, fmt.Errorf("record %s: %w", record.Slug, ErrDuplicateSlug)
	}
	if res.IsError() {
		return nil, fmt.Errorf("failed to create record %s: %s", record.Slug, res.String())
	}

	s.logger.Debug("Persisted record", "slug", record.Slug, "index", s.index)

	return &PersistedRecord{
		ID:        record.Slug,
		Slug:      record.Slug,
		CreatedAt: now,
	}, nil
}
