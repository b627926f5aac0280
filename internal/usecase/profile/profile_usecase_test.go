package profile

import (
	"context"
	"testing"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/infrastructure/vectorindex"
	"github.com/penpalhq/penpals-backend/internal/usecase/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeIndex records documents and write counts so tests can assert on
// when the interest document is refreshed.
type fakeIndex struct {
	docs map[string]string
	adds int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]string{}}
}

func (f *fakeIndex) Add(_ context.Context, documents []string, _ []map[string]interface{}, ids []string) vectorindex.AddResult {
	f.adds++
	for i, doc := range documents {
		f.docs[ids[i]] = doc
	}
	return vectorindex.AddResult{Status: vectorindex.StatusSuccess, DocumentIDs: ids}
}

func (f *fakeIndex) Query(_ context.Context, text string, _ int, _ map[string]interface{}) vectorindex.QueryResult {
	return vectorindex.QueryResult{Status: vectorindex.StatusSuccess, Query: text, Results: []vectorindex.Match{}}
}

func (f *fakeIndex) Delete(_ context.Context, ids []string) vectorindex.DeleteResult {
	for _, id := range ids {
		delete(f.docs, id)
	}
	return vectorindex.DeleteResult{Status: vectorindex.StatusSuccess, DeletedIDs: ids}
}

// commitOrderIndex observes whether the profile row was already
// visible when the interest document got written.
type commitOrderIndex struct {
	*fakeIndex
	profiles        *fakeProfileRepo
	addSeen         bool
	rowVisibleAtAdd bool
}

func (c *commitOrderIndex) Add(ctx context.Context, documents []string, metadatas []map[string]interface{}, ids []string) vectorindex.AddResult {
	c.addSeen = true
	c.rowVisibleAtAdd = len(c.profiles.profiles) > 0
	return c.fakeIndex.Add(ctx, documents, metadatas, ids)
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
	nextID   int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[int]*domain.Profile{}, nextID: 1}
}

// Create mirrors the real repository's ordering: the id is assigned
// and the stage callback runs before the row becomes visible.
func (r *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile, stage func(context.Context) error) error {
	p.ID = r.nextID
	r.nextID++
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
	copied := *p
	return &copied, nil
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
	copied := *p
	r.profiles[p.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id int) error {
	delete(r.profiles, id)
	return nil
}

type fakeRelationRepo struct {
	counts map[int]int
}

func (r *fakeRelationRepo) CreatePair(_ context.Context, a, b int) error { return nil }
func (r *fakeRelationRepo) Exists(_ context.Context, from, to int) (bool, error) {
	return false, nil
}
func (r *fakeRelationRepo) DeletePair(_ context.Context, a, b int) (int, error) { return 0, nil }
func (r *fakeRelationRepo) ListFriends(_ context.Context, profileID int) ([]*domain.Friend, error) {
	return nil, nil
}
func (r *fakeRelationRepo) CountByProfile(_ context.Context, profileID int) (int, error) {
	return r.counts[profileID], nil
}

func setup() (*ProfileUseCase, *fakeProfileRepo, *fakeIndex, *fakeRelationRepo) {
	profiles := newFakeProfileRepo()
	relations := &fakeRelationRepo{counts: map[int]int{}}
	index := newFakeIndex()
	orchestrator := matching.NewOrchestrator(index, profiles, zap.NewNop())
	uc := NewProfileUseCase(profiles, relations, orchestrator, zap.NewNop())
	return uc, profiles, index, relations
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes interests and indexes them", func(t *testing.T) {
		uc, _, index, _ := setup()

		created, err := uc.Create(ctx, 1, &CreateProfileRequest{
			Name:      "Room 5B",
			Interests: []interface{}{"Music", " music ", "Chess"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"music", "chess"}, created.Interests)
		assert.Equal(t, "music chess", index.docs["profile_1"])
	})

	t.Run("indexes interests before the row becomes visible", func(t *testing.T) {
		profiles := newFakeProfileRepo()
		relations := &fakeRelationRepo{counts: map[int]int{}}
		index := &commitOrderIndex{fakeIndex: newFakeIndex(), profiles: profiles}
		orchestrator := matching.NewOrchestrator(index, profiles, zap.NewNop())
		uc := NewProfileUseCase(profiles, relations, orchestrator, zap.NewNop())

		_, err := uc.Create(ctx, 1, &CreateProfileRequest{
			Name:      "Room 5B",
			Interests: []interface{}{"chess"},
		})
		require.NoError(t, err)

		require.True(t, index.addSeen)
		assert.False(t, index.rowVisibleAtAdd)
	})

	t.Run("no interests means no document", func(t *testing.T) {
		uc, _, index, _ := setup()

		_, err := uc.Create(ctx, 1, &CreateProfileRequest{Name: "Room 5B"})
		require.NoError(t, err)

		assert.Empty(t, index.docs)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		uc, _, _, _ := setup()

		_, err := uc.Create(ctx, 1, &CreateProfileRequest{Name: "   "})
		assert.Error(t, err)
	})

	t.Run("rejects malformed availability", func(t *testing.T) {
		uc, _, _, _ := setup()

		_, err := uc.Create(ctx, 1, &CreateProfileRequest{
			Name:         "Room 5B",
			Availability: []domain.AvailabilitySlot{{Day: "Monday", Time: ""}},
		})
		assert.ErrorIs(t, err, ErrInvalidAvailability)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("reindexes only when interests change", func(t *testing.T) {
		uc, _, index, _ := setup()
		created, err := uc.Create(ctx, 1, &CreateProfileRequest{
			Name:      "Room 5B",
			Interests: []interface{}{"chess"},
		})
		require.NoError(t, err)
		addsAfterCreate := index.adds

		name := "Room 6A"
		_, err = uc.Update(ctx, 1, created.ID, &UpdateProfileRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, addsAfterCreate, index.adds)

		interests := []interface{}{"music"}
		_, err = uc.Update(ctx, 1, created.ID, &UpdateProfileRequest{Interests: &interests})
		require.NoError(t, err)
		assert.Equal(t, addsAfterCreate+1, index.adds)
		assert.Equal(t, "music", index.docs["profile_1"])
	})

	t.Run("rejects foreign account", func(t *testing.T) {
		uc, _, _, _ := setup()
		created, err := uc.Create(ctx, 1, &CreateProfileRequest{Name: "Room 5B"})
		require.NoError(t, err)

		name := "Hijacked"
		_, err = uc.Update(ctx, 99, created.ID, &UpdateProfileRequest{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotProfileOwner)
	})
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("removes row and interest document", func(t *testing.T) {
		uc, profiles, index, relations := setup()
		created, err := uc.Create(ctx, 1, &CreateProfileRequest{
			Name:      "Room 5B",
			Interests: []interface{}{"chess"},
		})
		require.NoError(t, err)
		relations.counts[created.ID] = 3

		connections, err := uc.Delete(ctx, 1, created.ID)
		require.NoError(t, err)

		assert.Equal(t, 3, connections)
		assert.Empty(t, index.docs)
		_, err = profiles.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("rejects foreign account", func(t *testing.T) {
		uc, _, _, _ := setup()
		created, err := uc.Create(ctx, 1, &CreateProfileRequest{Name: "Room 5B"})
		require.NoError(t, err)

		_, err = uc.Delete(ctx, 99, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotProfileOwner)
	})

	t.Run("missing profile", func(t *testing.T) {
		uc, _, _, _ := setup()
		_, err := uc.Delete(ctx, 1, 404)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}
