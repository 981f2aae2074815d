package jwttoken

import (
	"actavc/pkg/platform/middleware/auth"
)

// JWTServiceAdapter satisfies auth.SessionValidator.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*auth.SessionClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &auth.SessionClaims{
		Address:  claims.Subject,
		Name:     claims.WalletName,
		ModuleID: claims.WalletID,
	}, nil
}
