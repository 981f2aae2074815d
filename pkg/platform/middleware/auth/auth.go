package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "actavc/pkg/domain"
	"actavc/pkg/requestcontext"
)

// SessionValidator validates wallet session tokens.
type SessionValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims are the wallet fields a session token asserts.
type SessionClaims struct {
	Address  string
	Name     string
	ModuleID string
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireWallet returns middleware that validates the bearer session token and
// places the connected wallet in the request context.
func RequireWallet(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing session token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Connect your wallet first")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid session token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session")
				return
			}

			address, err := id.ParseStellarAddress(claims.Address)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed session address",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session")
				return
			}

			ctx = requestcontext.WithWallet(ctx, requestcontext.Wallet{
				Address:  address,
				Name:     claims.Name,
				ModuleID: claims.ModuleID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
