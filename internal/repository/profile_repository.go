package repository

import (
	"context"

	"github.com/penpalhq/penpals-backend/internal/domain"
)

type ProfileRepository interface {
	// Create inserts the profile inside an open transaction, runs the
	// stage callback with the generated id already assigned, then
	// commits. A crash before the commit leaves nothing relational
	// behind; whatever stage wrote elsewhere becomes an orphan.
	Create(ctx context.Context, profile *domain.Profile, stage func(context.Context) error) error
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	ListByAccountID(ctx context.Context, accountID int) ([]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id int) error
}
