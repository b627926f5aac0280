package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/vectorindex"
	"github.com/penpalhq/penpals-backend/internal/repository"
	"go.uber.org/zap"
)

// maxSearchResults caps how many candidates one search may return.
const maxSearchResults = 50

// ErrEmptyQuery is returned when no valid interests survive
// normalization of a search request.
var ErrEmptyQuery = errors.New("no valid interests provided")

// Index is the slice of the vector index the orchestrator drives.
type Index interface {
	Add(ctx context.Context, documents []string, metadatas []map[string]interface{}, ids []string) vectorindex.AddResult
	Query(ctx context.Context, text string, k int, where map[string]interface{}) vectorindex.QueryResult
	Delete(ctx context.Context, ids []string) vectorindex.DeleteResult
}

// DocumentID returns the vector-index document id for a profile. The
// format is a fixed storage convention; changing it orphans every
// existing document.
func DocumentID(profileID int) string {
	return fmt.Sprintf("profile_%d", profileID)
}

// Orchestrator keeps the vector index in step with profile writes and
// fuses vector-search hits with relational records. The relational
// store stays authoritative: index writes are best-effort and the
// index may transiently drift behind it.
type Orchestrator struct {
	index    Index
	profiles repository.ProfileRepository
	log      *zap.Logger
}

func NewOrchestrator(index Index, profiles repository.ProfileRepository, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		index:    index,
		profiles: profiles,
		log:      log,
	}
}

// UpsertInterests replaces the profile's interest document with one
// built from its current interests, or removes it when the interest
// list is empty. The document is deleted and re-added rather than
// updated so the embedding is always recomputed. Index failures are
// logged and swallowed; the relational write they accompany has
// already succeeded or will proceed regardless.
func (o *Orchestrator) UpsertInterests(ctx context.Context, profile *domain.Profile) {
	id := DocumentID(profile.ID)

	// The delete is not verified before the add. A failed delete
	// followed by a successful add still converges because document
	// ids are unique per profile; a failed add leaves the profile
	// unindexed until its next interest write.
	if res := o.index.Delete(ctx, []string{id}); res.Status != vectorindex.StatusSuccess {
		o.log.Warn("vector index delete failed during upsert",
			zap.String("document_id", id),
			zap.String("message", res.Message),
		)
	}

	if len(profile.Interests) == 0 {
		return
	}

	location := ""
	if profile.Location != nil {
		location = *profile.Location
	}
	res := o.index.Add(ctx,
		[]string{strings.Join(profile.Interests, " ")},
		[]map[string]interface{}{{
			"profile_id":   profile.ID,
			"profile_name": profile.Name,
			"location":     location,
		}},
		[]string{id},
	)
	if res.Status != vectorindex.StatusSuccess {
		o.log.Warn("vector index add failed during upsert",
			zap.String("document_id", id),
			zap.String("message", res.Message),
		)
	}
}

// RemoveProfile deletes the profile's interest document. Best-effort:
// a failure is logged and the relational deletion proceeds.
func (o *Orchestrator) RemoveProfile(ctx context.Context, profileID int) {
	id := DocumentID(profileID)
	if res := o.index.Delete(ctx, []string{id}); res.Status != vectorindex.StatusSuccess {
		o.log.Warn("vector index delete failed",
			zap.String("document_id", id),
			zap.String("message", res.Message),
		)
	}
}

// Search finds up to k profiles whose interests are semantically close
// to the given ones. Each hit carries the vector similarity and the
// Jaccard overlap side by side; results keep vector-rank order. Hits
// whose profile no longer exists (index drift) are skipped silently.
// Unlike writes, a vector-index failure here is surfaced: search has
// no relational fallback.
func (o *Orchestrator) Search(ctx context.Context, interests []string, k int) ([]*domain.SearchResult, error) {
	normalized := NormalizeStrings(interests)
	query := strings.Join(normalized, " ")
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if k <= 0 {
		k = 10
	}
	if k > maxSearchResults {
		k = maxSearchResults
	}

	res := o.index.Query(ctx, query, k, nil)
	if res.Status != vectorindex.StatusSuccess {
		return nil, fmt.Errorf("vector search failed: %s", res.Message)
	}

	results := make([]*domain.SearchResult, 0, len(res.Results))
	for _, m := range res.Results {
		profileID, ok := profileIDFromMetadata(m.Metadata)
		if !ok {
			o.log.Warn("vector hit without profile_id metadata", zap.String("document_id", m.ID))
			continue
		}

		profile, err := o.profiles.GetByID(ctx, profileID)
		if errors.Is(err, domain.ErrProfileNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve profile %d: %w", profileID, err)
		}

		results = append(results, &domain.SearchResult{
			Profile:          profile,
			SimilarityScore:  Round3(m.Similarity),
			ManualSimilarity: Round3(Jaccard(normalized, profile.Interests)),
		})
	}

	return results, nil
}

// profileIDFromMetadata extracts the profile id, tolerating the numeric
// widening a JSONB round-trip applies.
func profileIDFromMetadata(metadata map[string]interface{}) (int, bool) {
	switch v := metadata["profile_id"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
