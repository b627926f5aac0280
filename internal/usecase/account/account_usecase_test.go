package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDenylist struct {
	revoked map[string]bool
}

func (d *fakeDenylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	d.revoked[jti] = true
	return nil
}

func (d *fakeDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return d.revoked[jti], nil
}

func newTestUseCase(denylist *fakeDenylist) *AccountUseCase {
	return NewAccountUseCase(
		nil, nil, nil, denylist, nil,
		"0123456789abcdef0123456789abcdef", 24, zap.NewNop(),
	)
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"Secur3!pass", "aB3$efgh", "Classroom#2026", "Short1!A"}
	for _, pw := range valid {
		assert.NoError(t, validatePassword(pw), pw)
	}

	invalid := []string{
		"alllowercase1!",  // no uppercase
		"ALLUPPERCASE1!",  // no lowercase
		"NoDigitsHere!",   // no digit
		"NoSpecials123ab", // no special character
		"Ab1!xyz",         // too short
	}
	for _, pw := range invalid {
		assert.ErrorIs(t, validatePassword(pw), ErrWeakPassword, pw)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	denylist := &fakeDenylist{revoked: map[string]bool{}}
	uc := newTestUseCase(denylist)

	token, err := uc.issueToken(42)
	require.NoError(t, err)

	claims, err := uc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.AccountID)
	assert.NotEmpty(t, claims.JTI)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateTokenRejectsRevoked(t *testing.T) {
	ctx := context.Background()
	denylist := &fakeDenylist{revoked: map[string]bool{}}
	uc := newTestUseCase(denylist)

	token, err := uc.issueToken(42)
	require.NoError(t, err)

	claims, err := uc.ValidateToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims.JTI, claims.ExpiresAt))

	_, err = uc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	uc := newTestUseCase(&fakeDenylist{revoked: map[string]bool{}})

	_, err := uc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	denylist := &fakeDenylist{revoked: map[string]bool{}}
	issuer := newTestUseCase(denylist)
	verifier := NewAccountUseCase(
		nil, nil, nil, denylist, nil,
		"a-completely-different-secret-value!", 24, zap.NewNop(),
	)

	token, err := issuer.issueToken(42)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
