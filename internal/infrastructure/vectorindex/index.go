package vectorindex

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/penpalhq/penpals-backend/internal/config"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// Embedder turns text into a vector. Implemented by the Gemini client
// in production and by fakes in tests.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index is a persistent document collection with cosine nearest-neighbor
// search, backed by a pgvector table. It shares no transaction with the
// relational repositories: every mutation here is an independent step.
type Index struct {
	db         *sqlx.DB
	embedder   Embedder
	collection string
	dimension  int
	log        *zap.Logger
}

// New opens (or creates) the collection and returns an index handle.
// One handle is built at process start and injected everywhere.
func New(db *sqlx.DB, embedder Embedder, cfg *config.VectorIndexConfig, log *zap.Logger) (*Index, error) {
	idx := &Index{
		db:         db,
		embedder:   embedder,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		log:        log,
	}
	if err := idx.ensureCollection(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure collection: %w", err)
	}
	return idx, nil
}

func (i *Index) ensureCollection(ctx context.Context) error {
	if _, err := i.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return err
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS vector_documents (
			collection TEXT        NOT NULL,
			id         TEXT        NOT NULL,
			document   TEXT        NOT NULL,
			metadata   JSONB       NOT NULL DEFAULT '{}',
			embedding  vector(%d)  NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`, i.dimension)
	_, err := i.db.ExecContext(ctx, query)
	return err
}

// Add embeds and stores documents. Missing ids are generated, missing
// metadata defaults to empty. An existing id is overwritten in place.
func (i *Index) Add(ctx context.Context, documents []string, metadatas []map[string]interface{}, ids []string) AddResult {
	if len(documents) == 0 {
		return AddResult{Status: StatusError, Message: "no documents provided"}
	}
	if ids == nil {
		ids = make([]string, len(documents))
		for n := range ids {
			ids[n] = uuid.NewString()
		}
	}
	if metadatas == nil {
		metadatas = make([]map[string]interface{}, len(documents))
		for n := range metadatas {
			metadatas[n] = map[string]interface{}{}
		}
	}
	if len(ids) != len(documents) || len(metadatas) != len(documents) {
		return AddResult{Status: StatusError, Message: "documents, metadatas and ids must have equal length"}
	}

	query := `
		INSERT INTO vector_documents (collection, id, document, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, id)
		DO UPDATE SET document = EXCLUDED.document,
		              metadata = EXCLUDED.metadata,
		              embedding = EXCLUDED.embedding
	`
	for n, doc := range documents {
		vec, err := i.embedder.Embed(ctx, doc)
		if err != nil {
			return AddResult{Status: StatusError, Message: err.Error()}
		}
		meta, err := json.Marshal(metadatas[n])
		if err != nil {
			return AddResult{Status: StatusError, Message: err.Error()}
		}
		if _, err := i.db.ExecContext(ctx, query,
			i.collection, ids[n], doc, meta, pgvector.NewVector(vec),
		); err != nil {
			return AddResult{Status: StatusError, Message: err.Error()}
		}
	}

	return AddResult{
		Status:      StatusSuccess,
		Message:     fmt.Sprintf("Added %d documents", len(documents)),
		DocumentIDs: ids,
	}
}

// Query returns up to k documents nearest to the query text, ordered by
// ascending cosine distance. The optional where filter matches on
// metadata containment.
func (i *Index) Query(ctx context.Context, text string, k int, where map[string]interface{}) QueryResult {
	vec, err := i.embedder.Embed(ctx, text)
	if err != nil {
		return QueryResult{Status: StatusError, Message: err.Error()}
	}

	query := `
		SELECT id, document, metadata, embedding <=> $1 AS distance
		FROM vector_documents
		WHERE collection = $2
	`
	args := []interface{}{pgvector.NewVector(vec), i.collection}
	if len(where) > 0 {
		filter, err := json.Marshal(where)
		if err != nil {
			return QueryResult{Status: StatusError, Message: err.Error()}
		}
		query += ` AND metadata @> $3`
		args = append(args, filter)
	}
	query += fmt.Sprintf(` ORDER BY embedding <=> $1 LIMIT %d`, k)

	rows, err := i.db.QueryContext(ctx, query, args...)
	if err != nil {
		return QueryResult{Status: StatusError, Message: err.Error()}
	}
	defer rows.Close()

	results := []Match{}
	for rows.Next() {
		var m Match
		var meta []byte
		if err := rows.Scan(&m.ID, &m.Document, &meta, &m.Distance); err != nil {
			return QueryResult{Status: StatusError, Message: err.Error()}
		}
		if err := json.Unmarshal(meta, &m.Metadata); err != nil {
			return QueryResult{Status: StatusError, Message: err.Error()}
		}
		m.Similarity = similarityFromDistance(m.Distance)
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return QueryResult{Status: StatusError, Message: err.Error()}
	}

	return QueryResult{
		Status:  StatusSuccess,
		Query:   text,
		Results: results,
		Count:   len(results),
	}
}

// Delete removes documents by id. Ids not present are not errors.
func (i *Index) Delete(ctx context.Context, ids []string) DeleteResult {
	if len(ids) == 0 {
		return DeleteResult{Status: StatusError, Message: "no ids provided"}
	}
	query := `DELETE FROM vector_documents WHERE collection = $1 AND id = ANY($2)`
	if _, err := i.db.ExecContext(ctx, query, i.collection, pq.Array(ids)); err != nil {
		return DeleteResult{Status: StatusError, Message: err.Error()}
	}
	return DeleteResult{
		Status:     StatusSuccess,
		Message:    fmt.Sprintf("Deleted %d documents", len(ids)),
		DeletedIDs: ids,
	}
}

// Update replaces the text (and optionally metadata) of an existing
// document; the embedding is recomputed from the new text.
func (i *Index) Update(ctx context.Context, id, document string, metadata map[string]interface{}) UpdateResult {
	vec, err := i.embedder.Embed(ctx, document)
	if err != nil {
		return UpdateResult{Status: StatusError, Message: err.Error()}
	}

	var result interface {
		RowsAffected() (int64, error)
	}
	if metadata != nil {
		meta, err := json.Marshal(metadata)
		if err != nil {
			return UpdateResult{Status: StatusError, Message: err.Error()}
		}
		query := `
			UPDATE vector_documents
			SET document = $1, metadata = $2, embedding = $3
			WHERE collection = $4 AND id = $5
		`
		result, err = i.db.ExecContext(ctx, query, document, meta, pgvector.NewVector(vec), i.collection, id)
		if err != nil {
			return UpdateResult{Status: StatusError, Message: err.Error()}
		}
	} else {
		query := `
			UPDATE vector_documents
			SET document = $1, embedding = $2
			WHERE collection = $3 AND id = $4
		`
		var err error
		result, err = i.db.ExecContext(ctx, query, document, pgvector.NewVector(vec), i.collection, id)
		if err != nil {
			return UpdateResult{Status: StatusError, Message: err.Error()}
		}
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return UpdateResult{Status: StatusError, Message: err.Error()}
	}
	if rows == 0 {
		return UpdateResult{Status: StatusError, Message: fmt.Sprintf("document %s not found", id)}
	}

	return UpdateResult{
		Status:     StatusSuccess,
		Message:    fmt.Sprintf("Updated document %s", id),
		DocumentID: id,
	}
}

// Info reports the collection name and its current document count.
func (i *Index) Info(ctx context.Context) InfoResult {
	var count int
	query := `SELECT COUNT(*) FROM vector_documents WHERE collection = $1`
	if err := i.db.GetContext(ctx, &count, query, i.collection); err != nil {
		return InfoResult{Status: StatusError, Message: err.Error()}
	}
	return InfoResult{
		Status:         StatusSuccess,
		CollectionName: i.collection,
		DocumentCount:  count,
	}
}
