package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/repository"
)

type relationRepository struct {
	db *sqlx.DB
}

func NewRelationRepository(db *sqlx.DB) repository.RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) CreatePair(ctx context.Context, profileA, profileB int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO relations (from_profile_id, to_profile_id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, query, profileA, profileB); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRelationExists
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, query, profileB, profileA); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRelationExists
		}
		return err
	}

	return tx.Commit()
}

func (r *relationRepository) Exists(ctx context.Context, fromProfileID, toProfileID int) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM relations
			WHERE from_profile_id = $1 AND to_profile_id = $2
		)
	`
	err := r.db.GetContext(ctx, &exists, query, fromProfileID, toProfileID)
	return exists, err
}

func (r *relationRepository) DeletePair(ctx context.Context, profileA, profileB int) (int, error) {
	query := `
		DELETE FROM relations
		WHERE (from_profile_id = $1 AND to_profile_id = $2)
		   OR (from_profile_id = $2 AND to_profile_id = $1)
	`
	result, err := r.db.ExecContext(ctx, query, profileA, profileB)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (r *relationRepository) ListFriends(ctx context.Context, profileID int) ([]*domain.Friend, error) {
	query := `
		SELECT p.id, p.account_id, p.name, p.location, p.latitude, p.longitude,
		       p.class_size, p.availability, p.interests, p.created_at, p.updated_at,
		       r.created_at AS friends_since
		FROM relations r
		JOIN profiles p ON p.id = r.to_profile_id
		WHERE r.from_profile_id = $1
		ORDER BY r.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []*domain.Friend
	for rows.Next() {
		var f domain.Friend
		var p domain.Profile
		if err := rows.Scan(
			&p.ID, &p.AccountID, &p.Name, &p.Location, &p.Latitude, &p.Longitude,
			&p.ClassSize, &p.Availability, pq.Array(&p.Interests),
			&p.CreatedAt, &p.UpdatedAt,
			&f.FriendsSince,
		); err != nil {
			return nil, err
		}
		f.Profile = &p
		friends = append(friends, &f)
	}
	return friends, rows.Err()
}

func (r *relationRepository) CountByProfile(ctx context.Context, profileID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM relations WHERE from_profile_id = $1`
	err := r.db.GetContext(ctx, &count, query, profileID)
	return count, err
}
