package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig configures token validation (and, in issuer mode, signing).
type JWTConfig struct {
	// PrivateKeyPEM enables issuer mode: the service can sign tokens and
	// validates against the derived public key.
	PrivateKeyPEM string

	// PublicKeyPEM enables validation-only mode against the gateway's RSA
	// public key. GenerateToken fails in this mode.
	PublicKeyPEM string

	// Secret enables HMAC-SHA256 mode for local and test setups where no
	// keypair is provisioned.
	Secret string

	Issuer     string
	Expiration time.Duration
}

// JWTService validates bearer tokens minted by the platform gateway.
type JWTService struct {
	config  JWTConfig
	signKey any // *rsa.PrivateKey or []byte, set when the service can sign
	verify  jwt.Keyfunc
}

var errValidationOnly = errors.New("no signing key configured")

// NewJWTService builds a service from whichever key material is configured.
// Exactly one mode applies: RSA issuer, RSA validation-only, or HMAC.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PrivateKeyPEM != "":
		privKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse RSA private key: %w", err)
		}
		svc.signKey = privKey
		svc.verify = rsaKeyfunc(&privKey.PublicKey)

	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		svc.verify = rsaKeyfunc(pubKey)

	case cfg.Secret != "":
		secret := []byte(cfg.Secret)
		svc.signKey = secret
		svc.verify = func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return secret, nil
		}

	default:
		return nil, errors.New("jwt configuration requires PrivateKeyPEM, PublicKeyPEM or Secret")
	}

	return svc, nil
}

func rsaKeyfunc(key any) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v, want RS256", token.Header["alg"])
		}
		return key, nil
	}
}

// GenerateToken signs a token for the given subject. Used by the gateway and
// by tests; validation-only deployments get errValidationOnly.
func (s *JWTService) GenerateToken(subjectRef, tenantID string, roles []string) (string, error) {
	if s.signKey == nil {
		return "", errValidationOnly
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   subjectRef,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		SubjectRef: subjectRef,
		TenantID:   tenantID,
		Roles:      roles,
	}

	method := jwt.SigningMethod(jwt.SigningMethodHS256)
	if _, hmac := s.signKey.([]byte); !hmac {
		method = jwt.SigningMethodRS256
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, s.verify, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TenantID == "" {
		return nil, errors.New("token carries no tenant")
	}
	return claims, nil
}

// LoadKeyFromFile reads PEM-encoded key material from disk.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file %q: %w", path, err)
	}
	return data, nil
}
