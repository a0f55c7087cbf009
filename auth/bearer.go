package auth

import "strings"

// BearerClaims verifies the token carried in an Authorization header.
// Accepts both "Bearer <token>" and a bare token, which is what the
// storefront clients historically sent.
func BearerClaims(header string, tokens *Service) (*Claims, error) {
	if header == "" {
		return nil, ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	return tokens.Verify(tokenString)
}
