package repository

import (
	"context"

	"github.com/penpalhq/penpals-backend/internal/domain"
)

type RelationRepository interface {
	// CreatePair inserts both directions of a friendship in one
	// transaction, keeping the relation graph symmetric.
	CreatePair(ctx context.Context, profileA, profileB int) error
	Exists(ctx context.Context, fromProfileID, toProfileID int) (bool, error)
	// DeletePair removes whichever directions of the edge exist and
	// returns how many rows were deleted.
	DeletePair(ctx context.Context, profileA, profileB int) (int, error)
	ListFriends(ctx context.Context, profileID int) ([]*domain.Friend, error)
	CountByProfile(ctx context.Context, profileID int) (int, error)
}
