package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims the gateway issues for origination calls.
// SubjectRef carries the applicant or staff reference the caller acts as;
// TenantID scopes every downstream repository call.
type Claims struct {
	jwt.RegisteredClaims
	SubjectRef string   `json:"subject_ref"`
	TenantID   string   `json:"tenant_id"`
	Roles      []string `json:"roles"`
}

// HasRole reports whether the claims carry the given role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Roles understood by the origination surface.
const (
	RoleApplicant   = "applicant"
	RoleLoanOfficer = "loan_officer"
	RoleCreditAdmin = "credit_admin"
	RoleIntegration = "integration"
)
