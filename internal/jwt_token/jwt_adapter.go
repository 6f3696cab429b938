package jwttoken

import (
	id "soulbound/pkg/domain"
	dErrors "soulbound/pkg/domain-errors"
	authmw "soulbound/pkg/platform/middleware/auth"
)

// ToMiddlewareClaims converts validated claims into what the auth middleware
// stores in the request context.
func ToMiddlewareClaims(claims *Claims) (*authmw.JWTClaims, error) {
	addr, err := id.ParseAddress(claims.Address)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token address is invalid")
	}
	return &authmw.JWTClaims{
		Address: addr,
		JTI:     claims.ID,
	}, nil
}

type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims)
}
