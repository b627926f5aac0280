package relation

import (
	"context"
	"fmt"
	"sort"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/repository"
	"github.com/penpalhq/penpals-backend/internal/usecase/matching"
	"go.uber.org/zap"
)

type RelationUseCase struct {
	relations repository.RelationRepository
	profiles  repository.ProfileRepository
	log       *zap.Logger
}

func NewRelationUseCase(
	relations repository.RelationRepository,
	profiles repository.ProfileRepository,
	log *zap.Logger,
) *RelationUseCase {
	return &RelationUseCase{
		relations: relations,
		profiles:  profiles,
		log:       log,
	}
}

// FriendList is a classroom's connections, most similar first.
type FriendList struct {
	ProfileID    int              `json:"profile_id"`
	ProfileName  string           `json:"profile_name"`
	Friends      []*domain.Friend `json:"friends"`
	FriendsCount int              `json:"friends_count"`
}

// Connect creates the symmetric friendship pair between two
// classrooms. Purely relational; the vector index is not involved.
func (uc *RelationUseCase) Connect(ctx context.Context, accountID, fromProfileID, toProfileID int) error {
	if fromProfileID == toProfileID {
		return domain.ErrSelfRelation
	}

	fromProfile, err := uc.profiles.GetByID(ctx, fromProfileID)
	if err != nil {
		return err
	}
	if fromProfile.AccountID != accountID {
		return domain.ErrNotProfileOwner
	}

	if _, err := uc.profiles.GetByID(ctx, toProfileID); err != nil {
		return err
	}

	exists, err := uc.relations.Exists(ctx, fromProfileID, toProfileID)
	if err != nil {
		return fmt.Errorf("failed to check relation: %w", err)
	}
	if exists {
		return domain.ErrRelationExists
	}

	if err := uc.relations.CreatePair(ctx, fromProfileID, toProfileID); err != nil {
		return err
	}

	uc.log.Info("profiles connected",
		zap.Int("from_profile_id", fromProfileID),
		zap.Int("to_profile_id", toProfileID),
	)
	return nil
}

// Disconnect removes both directions of a friendship.
func (uc *RelationUseCase) Disconnect(ctx context.Context, accountID, fromProfileID, toProfileID int) error {
	fromProfile, err := uc.profiles.GetByID(ctx, fromProfileID)
	if err != nil {
		return err
	}
	if fromProfile.AccountID != accountID {
		return domain.ErrNotProfileOwner
	}

	deleted, err := uc.relations.DeletePair(ctx, fromProfileID, toProfileID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrRelationNotFound
	}
	return nil
}

// Friends lists a classroom's connections annotated with the Jaccard
// interest overlap, sorted by similarity descending.
func (uc *RelationUseCase) Friends(ctx context.Context, profileID int) (*FriendList, error) {
	profile, err := uc.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	friends, err := uc.relations.ListFriends(ctx, profileID)
	if err != nil {
		return nil, err
	}

	for _, f := range friends {
		f.InterestSimilarity = matching.Round3(matching.Jaccard(profile.Interests, f.Profile.Interests))
	}
	sort.SliceStable(friends, func(i, j int) bool {
		return friends[i].InterestSimilarity > friends[j].InterestSimilarity
	})

	return &FriendList{
		ProfileID:    profile.ID,
		ProfileName:  profile.Name,
		Friends:      friends,
		FriendsCount: len(friends),
	}, nil
}
