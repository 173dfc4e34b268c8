package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "task-service.com/task-service/internal/errors"
)

// Verifier validates HMAC-signed bearer tokens and extracts the principal.
type Verifier struct {
	secret      []byte
	tenantClaim string
}

func NewVerifier(secret, tenantClaim string) *Verifier {
	if tenantClaim == "" {
		tenantClaim = "tenant_id"
	}
	return &Verifier{secret: []byte(secret), tenantClaim: tenantClaim}
}

func (v *Verifier) Verify(tokenString string) (*Principal, error) {
	if len(v.secret) == 0 {
		return nil, apperrors.ErrNotAuthenticated.Because("token verification is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return nil, apperrors.ErrNotAuthenticated.Because("invalid token").Wrap(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrNotAuthenticated.Because("invalid token claims")
	}

	subject, _ := claims.GetSubject()
	tenantID, _ := claims[v.tenantClaim].(string)

	return &Principal{
		Subject:  subject,
		TenantID: tenantID,
		Roles:    extractRoles(claims),
		Token:    tokenString,
	}, nil
}

// Issue signs a token carrying the given tenant and roles.
func (v *Verifier) Issue(subject, tenantID string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"roles": roles,
	}
	if tenantID != "" {
		claims[v.tenantClaim] = tenantID
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// extractRoles reads a flat "roles" claim and Keycloak-style
// realm_access.roles.
func extractRoles(claims jwt.MapClaims) []string {
	roles := toStrings(claims["roles"])

	if realm, ok := claims["realm_access"].(map[string]any); ok {
		roles = append(roles, toStrings(realm["roles"])...)
	}

	return roles
}

func toStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
