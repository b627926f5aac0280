package matching

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/vectorindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDoc struct {
	text     string
	metadata map[string]interface{}
}

// fakeIndex stores documents in memory and ranks query hits by token
// overlap, standing in for the embedding-based cosine ranking.
type fakeIndex struct {
	docs       map[string]fakeDoc
	failAdd    bool
	failQuery  bool
	failDelete bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]fakeDoc{}}
}

func (f *fakeIndex) Add(_ context.Context, documents []string, metadatas []map[string]interface{}, ids []string) vectorindex.AddResult {
	if f.failAdd {
		return vectorindex.AddResult{Status: vectorindex.StatusError, Message: "add failed"}
	}
	for i, doc := range documents {
		f.docs[ids[i]] = fakeDoc{text: doc, metadata: metadatas[i]}
	}
	return vectorindex.AddResult{Status: vectorindex.StatusSuccess, DocumentIDs: ids}
}

func (f *fakeIndex) Query(_ context.Context, text string, k int, _ map[string]interface{}) vectorindex.QueryResult {
	if f.failQuery {
		return vectorindex.QueryResult{Status: vectorindex.StatusError, Message: "query failed"}
	}
	queryTokens := strings.Fields(text)
	var matches []vectorindex.Match
	for id, doc := range f.docs {
		overlap := Jaccard(queryTokens, strings.Fields(doc.text))
		matches = append(matches, vectorindex.Match{
			ID:         id,
			Document:   doc.text,
			Metadata:   doc.metadata,
			Distance:   1 - overlap,
			Similarity: overlap,
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].ID < matches[j].ID
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return vectorindex.QueryResult{
		Status:  vectorindex.StatusSuccess,
		Query:   text,
		Results: matches,
		Count:   len(matches),
	}
}

func (f *fakeIndex) Delete(_ context.Context, ids []string) vectorindex.DeleteResult {
	if f.failDelete {
		return vectorindex.DeleteResult{Status: vectorindex.StatusError, Message: "delete failed"}
	}
	for _, id := range ids {
		delete(f.docs, id)
	}
	return vectorindex.DeleteResult{Status: vectorindex.StatusSuccess, DeletedIDs: ids}
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[int]*domain.Profile{}}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile, stage func(context.Context) error) error {
	if stage != nil {
		if err := stage(ctx); err != nil {
			return err
		}
	}
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id int) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) ListByAccountID(_ context.Context, accountID int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range r.profiles {
		if p.AccountID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id int) error {
	delete(r.profiles, id)
	return nil
}

func testProfile(id int, name string, interests ...string) *domain.Profile {
	return &domain.Profile{ID: id, AccountID: 1, Name: name, Interests: interests}
}

func TestUpsertInterests(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one document keyed by profile id", func(t *testing.T) {
		index := newFakeIndex()
		o := NewOrchestrator(index, newFakeProfileRepo(), zap.NewNop())

		o.UpsertInterests(ctx, testProfile(1, "Room 5B", "chess", "art"))

		require.Len(t, index.docs, 1)
		doc, ok := index.docs["profile_1"]
		require.True(t, ok)
		assert.Equal(t, "chess art", doc.text)
		assert.Equal(t, 1, doc.metadata["profile_id"])
		assert.Equal(t, "Room 5B", doc.metadata["profile_name"])
	})

	t.Run("is idempotent", func(t *testing.T) {
		index := newFakeIndex()
		o := NewOrchestrator(index, newFakeProfileRepo(), zap.NewNop())

		p := testProfile(1, "Room 5B", "chess")
		o.UpsertInterests(ctx, p)
		o.UpsertInterests(ctx, p)

		assert.Len(t, index.docs, 1)
	})

	t.Run("re-adds when interests change", func(t *testing.T) {
		index := newFakeIndex()
		o := NewOrchestrator(index, newFakeProfileRepo(), zap.NewNop())

		o.UpsertInterests(ctx, testProfile(1, "Room 5B", "chess"))
		o.UpsertInterests(ctx, testProfile(1, "Room 5B", "music", "hiking"))

		require.Len(t, index.docs, 1)
		assert.Equal(t, "music hiking", index.docs["profile_1"].text)
	})

	t.Run("empty interests remove the document", func(t *testing.T) {
		index := newFakeIndex()
		o := NewOrchestrator(index, newFakeProfileRepo(), zap.NewNop())

		o.UpsertInterests(ctx, testProfile(1, "Room 5B", "chess"))
		o.UpsertInterests(ctx, testProfile(1, "Room 5B"))

		assert.Empty(t, index.docs)
	})

	t.Run("index failures are swallowed", func(t *testing.T) {
		index := newFakeIndex()
		index.failAdd = true
		index.failDelete = true
		o := NewOrchestrator(index, newFakeProfileRepo(), zap.NewNop())

		// Must not panic or propagate; the relational write wins.
		o.UpsertInterests(ctx, testProfile(1, "Room 5B", "chess"))
	})
}

func TestRemoveProfile(t *testing.T) {
	ctx := context.Background()

	index := newFakeIndex()
	p1 := testProfile(1, "Room 5B", "chess")
	repo := newFakeProfileRepo(p1)
	o := NewOrchestrator(index, repo, zap.NewNop())

	o.UpsertInterests(ctx, p1)
	o.RemoveProfile(ctx, 1)

	results, err := o.Search(ctx, []string{"chess"}, 5)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, 1, r.Profile.ID)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns matches with both scores", func(t *testing.T) {
		index := newFakeIndex()
		p1 := testProfile(1, "Room 5B", "chess")
		o := NewOrchestrator(index, newFakeProfileRepo(p1), zap.NewNop())
		o.UpsertInterests(ctx, p1)

		results, err := o.Search(ctx, []string{"chess"}, 5)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].Profile.ID)
		assert.Greater(t, results[0].SimilarityScore, 0.0)
		assert.Equal(t, 1.0, results[0].ManualSimilarity)
	})

	t.Run("preserves vector-rank order", func(t *testing.T) {
		index := newFakeIndex()
		p1 := testProfile(1, "A", "chess", "art")
		p2 := testProfile(2, "B", "chess")
		o := NewOrchestrator(index, newFakeProfileRepo(p1, p2), zap.NewNop())
		o.UpsertInterests(ctx, p1)
		o.UpsertInterests(ctx, p2)

		results, err := o.Search(ctx, []string{"chess"}, 5)
		require.NoError(t, err)
		require.Len(t, results, 2)
		// Exact token match ranks first in the fake's ordering.
		assert.Equal(t, 2, results[0].Profile.ID)
		assert.Equal(t, 1, results[1].Profile.ID)
	})

	t.Run("skips hits whose profile no longer exists", func(t *testing.T) {
		index := newFakeIndex()
		p1 := testProfile(1, "A", "chess")
		repo := newFakeProfileRepo(p1)
		o := NewOrchestrator(index, repo, zap.NewNop())
		o.UpsertInterests(ctx, p1)

		// Simulate index drift: profile gone, document left behind.
		delete(repo.profiles, 1)

		results, err := o.Search(ctx, []string{"chess"}, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("propagates index failure", func(t *testing.T) {
		index := newFakeIndex()
		index.failQuery = true
		o := NewOrchestrator(index, newFakeProfileRepo(), zap.NewNop())

		_, err := o.Search(ctx, []string{"chess"}, 5)
		assert.Error(t, err)
	})

	t.Run("rejects queries with no valid interests", func(t *testing.T) {
		o := NewOrchestrator(newFakeIndex(), newFakeProfileRepo(), zap.NewNop())

		_, err := o.Search(ctx, []string{"", "   "}, 5)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "profile_42", DocumentID(42))
}
