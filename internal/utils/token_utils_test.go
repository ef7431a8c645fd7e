package utils_test

import (
	"testing"
	"time"

	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestStaffTokenRoundTrip(t *testing.T) {
	token, err := utils.GenerateStaffToken("staff-1", "T1", domain.RoleAdmin, testSecret, time.Hour, "registration")
	require.NoError(t, err)

	claims, err := utils.ParseStaffToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.StaffID())
	assert.Equal(t, "T1", claims.TerminalID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "registration", claims.Issuer)
}

func TestParseStaffToken_Rejections(t *testing.T) {
	expired, err := utils.GenerateStaffToken("staff-1", "T1", domain.RoleStaff, testSecret, -time.Minute, "registration")
	require.NoError(t, err)
	_, err = utils.ParseStaffToken(expired, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := utils.GenerateStaffToken("staff-1", "T1", domain.RoleStaff, testSecret, time.Hour, "registration")
	require.NoError(t, err)
	_, err = utils.ParseStaffToken(valid, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	noTerminal := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "staff-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := noTerminal.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = utils.ParseStaffToken(signed, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
}

func TestGenerateStaffToken_Validation(t *testing.T) {
	_, err := utils.GenerateStaffToken("", "T1", domain.RoleStaff, testSecret, time.Hour, "registration")
	assert.Error(t, err)

	_, err = utils.GenerateStaffToken("staff-1", "T1", "root", testSecret, time.Hour, "registration")
	assert.Error(t, err)
}
