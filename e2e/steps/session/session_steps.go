// Package session mints wallet session tokens directly, so features can
// reach protected routes without a wallet bridge.
package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cucumber/godog"

	jwttoken "actavc/internal/jwt_token"
)

// devSigningKey matches the server default when SESSION_SIGNING_KEY is unset.
const devSigningKey = "dev-secret-key-change-in-production"

type TestContext interface {
	SetSession(address, token string)
	GetWalletAddress() string
}

func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &sessionSteps{tc: tc}
	ctx.Step(`^I have a wallet session for "([^"]*)"$`, steps.haveSession)
	ctx.Step(`^I have no wallet session$`, steps.noSession)
}

type sessionSteps struct {
	tc TestContext
}

func (s *sessionSteps) haveSession(ctx context.Context, address string) error {
	key := os.Getenv("SESSION_SIGNING_KEY")
	if key == "" {
		key = devSigningKey
	}
	issuer := os.Getenv("SESSION_ISSUER")
	if issuer == "" {
		issuer = "actavc"
	}
	token, _, err := jwttoken.NewJWTService(key, issuer, 10*time.Minute).
		GenerateSessionToken(ctx, jwttoken.SessionInput{
			Address:    address,
			WalletName: "Freighter",
			WalletID:   "freighter",
			Device:     "e2e",
		})
	if err != nil {
		return fmt.Errorf("mint session token: %w", err)
	}
	s.tc.SetSession(address, token)
	return nil
}

func (s *sessionSteps) noSession(ctx context.Context) error {
	s.tc.SetSession("", "")
	return nil
}
