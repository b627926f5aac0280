package relation

import (
	"context"
	"testing"
	"time"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type edge struct{ from, to int }

type fakeRelationRepo struct {
	edges   map[edge]time.Time
	friends map[int][]*domain.Friend
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{
		edges:   map[edge]time.Time{},
		friends: map[int][]*domain.Friend{},
	}
}

func (r *fakeRelationRepo) CreatePair(_ context.Context, a, b int) error {
	if _, ok := r.edges[edge{a, b}]; ok {
		return domain.ErrRelationExists
	}
	now := time.Now()
	r.edges[edge{a, b}] = now
	r.edges[edge{b, a}] = now
	return nil
}

func (r *fakeRelationRepo) Exists(_ context.Context, from, to int) (bool, error) {
	_, ok := r.edges[edge{from, to}]
	return ok, nil
}

func (r *fakeRelationRepo) DeletePair(_ context.Context, a, b int) (int, error) {
	deleted := 0
	for _, e := range []edge{{a, b}, {b, a}} {
		if _, ok := r.edges[e]; ok {
			delete(r.edges, e)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeRelationRepo) ListFriends(_ context.Context, profileID int) ([]*domain.Friend, error) {
	return r.friends[profileID], nil
}

func (r *fakeRelationRepo) CountByProfile(_ context.Context, profileID int) (int, error) {
	count := 0
	for e := range r.edges {
		if e.from == profileID {
			count++
		}
	}
	return count, nil
}

type fakeProfileRepo struct {
	profiles map[int]*domain.Profile
}

func (r *fakeProfileRepo) Create(_ context.Context, p *domain.Profile, _ func(context.Context) error) error {
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
	return nil, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error { return nil }
func (r *fakeProfileRepo) Delete(_ context.Context, id int) error            { return nil }

func setup() (*RelationUseCase, *fakeRelationRepo) {
	relations := newFakeRelationRepo()
	profiles := &fakeProfileRepo{profiles: map[int]*domain.Profile{
		1: {ID: 1, AccountID: 10, Name: "Room A", Interests: []string{"chess", "art"}},
		2: {ID: 2, AccountID: 20, Name: "Room B", Interests: []string{"chess", "music"}},
		3: {ID: 3, AccountID: 30, Name: "Room C"},
	}}
	return NewRelationUseCase(relations, profiles, zap.NewNop()), relations
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("creates both directions", func(t *testing.T) {
		uc, relations := setup()

		require.NoError(t, uc.Connect(ctx, 10, 1, 2))

		forward, _ := relations.Exists(ctx, 1, 2)
		backward, _ := relations.Exists(ctx, 2, 1)
		assert.True(t, forward)
		assert.True(t, backward)
	})

	t.Run("rejects self-connection", func(t *testing.T) {
		uc, _ := setup()
		assert.ErrorIs(t, uc.Connect(ctx, 10, 1, 1), domain.ErrSelfRelation)
	})

	t.Run("rejects duplicate connection", func(t *testing.T) {
		uc, _ := setup()
		require.NoError(t, uc.Connect(ctx, 10, 1, 2))
		assert.ErrorIs(t, uc.Connect(ctx, 10, 1, 2), domain.ErrRelationExists)
	})

	t.Run("rejects foreign profile", func(t *testing.T) {
		uc, _ := setup()
		assert.ErrorIs(t, uc.Connect(ctx, 99, 1, 2), domain.ErrNotProfileOwner)
	})

	t.Run("rejects missing target", func(t *testing.T) {
		uc, _ := setup()
		assert.ErrorIs(t, uc.Connect(ctx, 10, 1, 404), domain.ErrProfileNotFound)
	})
}

func TestDisconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("removes both directions", func(t *testing.T) {
		uc, relations := setup()
		require.NoError(t, uc.Connect(ctx, 10, 1, 2))

		require.NoError(t, uc.Disconnect(ctx, 10, 1, 2))

		forward, _ := relations.Exists(ctx, 1, 2)
		backward, _ := relations.Exists(ctx, 2, 1)
		assert.False(t, forward)
		assert.False(t, backward)
	})

	t.Run("errors when no relation exists", func(t *testing.T) {
		uc, _ := setup()
		assert.ErrorIs(t, uc.Disconnect(ctx, 10, 1, 2), domain.ErrRelationNotFound)
	})
}

func TestFriends(t *testing.T) {
	ctx := context.Background()

	t.Run("annotates with rounded similarity, most similar first", func(t *testing.T) {
		uc, relations := setup()
		// Profile 1 has interests {chess, art}.
		relations.friends[1] = []*domain.Friend{
			{Profile: &domain.Profile{ID: 4, Name: "Room D", Interests: []string{"chess", "music"}}},
			{Profile: &domain.Profile{ID: 2, Name: "Room B", Interests: []string{"chess"}}},
		}

		list, err := uc.Friends(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list.Friends, 2)

		assert.Equal(t, 2, list.Friends[0].Profile.ID)
		assert.Equal(t, 0.5, list.Friends[0].InterestSimilarity)
		assert.Equal(t, 4, list.Friends[1].Profile.ID)
		assert.Equal(t, 0.333, list.Friends[1].InterestSimilarity)
		assert.Equal(t, 2, list.FriendsCount)
	})

	t.Run("missing profile", func(t *testing.T) {
		uc, _ := setup()
		_, err := uc.Friends(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}
