package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "crediflow-gateway",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("staff-007", "tenant-001", []string{RoleLoanOfficer})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-007", claims.SubjectRef)
	assert.Equal(t, "tenant-001", claims.TenantID)
	assert.True(t, claims.HasRole(RoleLoanOfficer))
	assert.False(t, claims.HasRole(RoleCreditAdmin))
}

func TestJWTService_RejectsForeignIssuer(t *testing.T) {
	other, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "someone-else",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	token, err := other.GenerateToken("staff-007", "tenant-001", nil)
	require.NoError(t, err)

	_, err = newTestService(t).ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "crediflow-gateway",
		Expiration: -time.Minute,
	})
	require.NoError(t, err)
	token, err := svc.GenerateToken("person-001", "tenant-001", []string{RoleApplicant})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.GenerateToken("person-001", "tenant-001", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	require.Error(t, err)
}

func TestJWTService_RequiresTenant(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.GenerateToken("person-001", "", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant")
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Issuer: "crediflow-gateway"})
	require.Error(t, err)
}
