package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growbro/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-bytes!!",
		AccessTokenExpiration: expiration,
		Issuer:                "growbro-test",
	})
}

func testInput() IssueTokenInput {
	return IssueTokenInput{
		OrgID:    uuid.New(),
		UserID:   uuid.New(),
		Username: "alice",
		Role:     RoleOwner,
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	input := testInput()

	issued, err := svc.IssueToken(input)
	require.NoError(t, err)
	require.NotEmpty(t, issued.AccessToken)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), issued.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.OrgID.String(), claims.OrgID)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleOwner, claims.Role)
	assert.Equal(t, "growbro-test", claims.Issuer)

	orgID, err := claims.GetOrgUUID()
	require.NoError(t, err)
	assert.Equal(t, input.OrgID, orgID)

	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, userID)
}

func TestValidateToken_Errors(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredSvc := newTestService(-time.Minute)
		issued, err := expiredSvc.IssueToken(testInput())
		require.NoError(t, err)

		_, err = expiredSvc.ValidateToken(issued.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-32-byte-key!",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "growbro-test",
		})
		issued, err := other.IssueToken(testInput())
		require.NoError(t, err)

		_, err = svc.ValidateToken(issued.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing org id", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			UserID: uuid.New().String(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-at-least-32-bytes!!"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrMissingOrgID)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			OrgID:  uuid.New().String(),
			UserID: uuid.New().String(),
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaimsRole(t *testing.T) {
	owner := &Claims{Role: RoleOwner}
	staff := &Claims{Role: RoleStaff}

	assert.True(t, owner.IsOwner())
	assert.False(t, staff.IsOwner())
}
