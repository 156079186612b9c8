package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivex/school-access/internal/domain/entity"
)

func TestAccessCode_Redeem(t *testing.T) {
	now := time.Now()
	schoolID := uuid.New()

	code := entity.NewAccessCode("TRIAL-1234", uuid.New())
	require.Equal(t, entity.CodeStatusUnused, code.Status)

	err := code.Redeem(schoolID, now)
	require.NoError(t, err)
	assert.Equal(t, entity.CodeStatusActive, code.Status)
	require.NotNil(t, code.ActivatedAt)
	assert.True(t, code.ActivatedAt.Equal(now))
	require.NotNil(t, code.SchoolID)
	assert.Equal(t, schoolID, *code.SchoolID)

	// Second redemption fails, activation stamp stays put.
	err = code.Redeem(uuid.New(), now.Add(time.Hour))
	assert.ErrorIs(t, err, entity.ErrCodeAlreadyRedeemed)
	assert.True(t, code.ActivatedAt.Equal(now))
	assert.Equal(t, schoolID, *code.SchoolID)
}

func TestAccessCode_RedeemRevoked(t *testing.T) {
	now := time.Now()
	code := entity.NewAccessCode("TRIAL-1234", uuid.New())
	code.Revoke(now)

	err := code.Redeem(uuid.New(), now)
	assert.ErrorIs(t, err, entity.ErrCodeRevoked)
}

func TestAccessCode_ValidityWindow(t *testing.T) {
	activated := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	code := entity.NewAccessCode("TRIAL-1234", uuid.New())
	require.NoError(t, code.Redeem(uuid.New(), activated))

	tests := []struct {
		name  string
		now   time.Time
		valid bool
	}{
		{"just redeemed", activated, true},
		{"one hour in", activated.Add(time.Hour), true},
		{"one minute before boundary", activated.Add(24*time.Hour - time.Minute), true},
		{"exactly 24h is already invalid", activated.Add(24 * time.Hour), false},
		{"past the window", activated.Add(25 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, code.IsValid(tt.now))
		})
	}
}

func TestAccessCode_EffectiveStatus(t *testing.T) {
	activated := time.Now()
	code := entity.NewAccessCode("TRIAL-1234", uuid.New())
	require.NoError(t, code.Redeem(uuid.New(), activated))

	assert.Equal(t, entity.CodeStatusActive, code.EffectiveStatus(activated.Add(time.Hour)))
	// Expiry is derived, not a stored transition.
	assert.Equal(t, entity.CodeStatusExpired, code.EffectiveStatus(activated.Add(25*time.Hour)))
	assert.Equal(t, entity.CodeStatusActive, code.Status)

	code.Revoke(activated.Add(time.Hour))
	assert.Equal(t, entity.CodeStatusRevoked, code.EffectiveStatus(activated.Add(2*time.Hour)))
}

func TestAccessCode_ExpiresAt(t *testing.T) {
	code := entity.NewAccessCode("TRIAL-1234", uuid.New())
	assert.Nil(t, code.ExpiresAt())

	activated := time.Now()
	require.NoError(t, code.Redeem(uuid.New(), activated))
	require.NotNil(t, code.ExpiresAt())
	assert.True(t, code.ExpiresAt().Equal(activated.Add(24*time.Hour)))
}

func TestAccessCode_UnredeemedNeverValid(t *testing.T) {
	code := entity.NewAccessCode("TRIAL-1234", uuid.New())
	assert.False(t, code.IsValid(time.Now()))
}
