package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/penpalhq/penpals-backend/internal/domain"
	"github.com/penpalhq/penpals-backend/internal/repository"
	"github.com/penpalhq/penpals-backend/internal/usecase/matching"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const maxOrganizationLength = 120

// ErrWeakPassword is returned when a password fails the policy:
// at least 8 characters with one uppercase, one lowercase, one digit
// and one special character.
var ErrWeakPassword = errors.New("password must be at least 8 characters and include one uppercase, one lowercase, one digit, and one special character")

type AccountUseCase struct {
	accounts     repository.AccountRepository
	profiles     repository.ProfileRepository
	relations    repository.RelationRepository
	denylist     repository.TokenDenylist
	orchestrator *matching.Orchestrator
	jwtSecret    string
	tokenExpiry  time.Duration
	log          *zap.Logger
}

func NewAccountUseCase(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	relations repository.RelationRepository,
	denylist repository.TokenDenylist,
	orchestrator *matching.Orchestrator,
	jwtSecret string,
	expiryHours int,
	log *zap.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		accounts:     accounts,
		profiles:     profiles,
		relations:    relations,
		denylist:     denylist,
		orchestrator: orchestrator,
		jwtSecret:    jwtSecret,
		tokenExpiry:  time.Duration(expiryHours) * time.Hour,
		log:          log,
	}
}

// RegisterRequest represents account registration request
type RegisterRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required"`
	Organization *string `json:"organization" binding:"omitempty,max=120"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest represents account update request
type UpdateAccountRequest struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	Organization *string `json:"organization"`
	Password     *string `json:"password"`
}

// AccountDetails bundles an account with its classrooms.
type AccountDetails struct {
	Account    *domain.Account   `json:"account"`
	Classrooms []*domain.Profile `json:"classrooms"`
}

// Register creates a new account with a bcrypt password hash.
func (uc *AccountUseCase) Register(ctx context.Context, req *RegisterRequest) (*domain.Account, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Organization: req.Organization,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.log.Info("account registered", zap.Int("account_id", account.ID))
	return account, nil
}

// Login verifies credentials and issues an access token.
func (uc *AccountUseCase) Login(ctx context.Context, req *LoginRequest) (string, *domain.Account, error) {
	account, err := uc.accounts.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := uc.issueToken(account.ID)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Logout revokes the token until its natural expiry.
func (uc *AccountUseCase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	return uc.denylist.Revoke(ctx, jti, time.Until(expiresAt))
}

// GetDetails returns the account together with all its classrooms.
func (uc *AccountUseCase) GetDetails(ctx context.Context, accountID int) (*AccountDetails, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	classrooms, err := uc.profiles.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &AccountDetails{Account: account, Classrooms: classrooms}, nil
}

// Update modifies account fields that are present in the request.
func (uc *AccountUseCase) Update(ctx context.Context, accountID int, req *UpdateAccountRequest) (*domain.Account, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		account.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Organization != nil {
		org := strings.TrimSpace(*req.Organization)
		if len(org) > maxOrganizationLength {
			return nil, fmt.Errorf("organization name too long (max %d characters)", maxOrganizationLength)
		}
		if org == "" {
			account.Organization = nil
		} else {
			account.Organization = &org
		}
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.PasswordHash = string(hash)
	}

	if err := uc.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Delete removes the account, its classrooms and their interest
// documents. Vector-index deletions are best-effort, ahead of the
// relational cascade.
func (uc *AccountUseCase) Delete(ctx context.Context, accountID int) (int, error) {
	classrooms, err := uc.profiles.ListByAccountID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	for _, classroom := range classrooms {
		uc.orchestrator.RemoveProfile(ctx, classroom.ID)
	}

	if err := uc.accounts.Delete(ctx, accountID); err != nil {
		return 0, err
	}
	return len(classrooms), nil
}

// Stats aggregates classroom, connection and interest counts.
func (uc *AccountUseCase) Stats(ctx context.Context, accountID int) (*domain.AccountStats, error) {
	account, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	classrooms, err := uc.profiles.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	totalConnections := 0
	uniqueInterests := map[string]struct{}{}
	for _, classroom := range classrooms {
		count, err := uc.relations.CountByProfile(ctx, classroom.ID)
		if err != nil {
			return nil, err
		}
		totalConnections += count
		for _, interest := range classroom.Interests {
			uniqueInterests[interest] = struct{}{}
		}
	}

	return &domain.AccountStats{
		AccountID:        account.ID,
		TotalClassrooms:  len(classrooms),
		TotalConnections: totalConnections,
		UniqueInterests:  len(uniqueInterests),
		AccountCreated:   account.CreatedAt,
	}, nil
}

func validatePassword(password string) error {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if len(password) < 8 || !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}
