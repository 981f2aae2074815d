package jwttoken

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/requestcontext"
)

// SessionClaims are the claims of a wallet session token. The subject is the
// wallet address. The token asserts which wallet connected; it carries no
// signing capability.
type SessionClaims struct {
	WalletName string `json:"wallet_name,omitempty"`
	WalletID   string `json:"wallet_id,omitempty"`
	Device     string `json:"device,omitempty"`
	jwt.RegisteredClaims
}

// SessionInput is what a session token is minted from.
type SessionInput struct {
	Address    string
	WalletName string
	WalletID   string
	Device     string
}

// JWTService issues and validates HS256 wallet session tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewJWTService(signingKey string, issuer string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// GenerateSessionToken signs a token for the wallet and returns it with its expiry.
func (s *JWTService) GenerateSessionToken(ctx context.Context, in SessionInput) (string, time.Time, error) {
	if in.Address == "" {
		return "", time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "wallet address is required")
	}
	now := requestcontext.Now(ctx)
	expiresAt := now.Add(s.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		WalletName: in.WalletName,
		WalletID:   in.WalletID,
		Device:     in.Device,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   in.Address,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature, algorithm, expiry and issuer.
func (s *JWTService) ValidateToken(tokenString string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		if errors.Is(err, jwt.ErrTokenInvalidIssuer) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token issuer")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has no subject")
	}
	return claims, nil
}
