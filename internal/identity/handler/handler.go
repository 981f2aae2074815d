package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"actavc/internal/identity"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/httputil"
	"actavc/pkg/requestcontext"
)

// Service is the owner-identity surface the handler needs.
type Service interface {
	CurrentDID(ctx context.Context, connectedAddress string) (identity.DID, bool)
	SaveComputedDID(ctx context.Context, address string) (identity.DID, bool)
	Clear(ctx context.Context) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/identity/did", h.HandleGetDID)
}

// RegisterProtected mounts routes that need a wallet session.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/identity/did", h.HandleSaveDID)
	r.Delete("/identity/did", h.HandleClearDID)
}

// DIDResponse describes the owner identity.
type DIDResponse struct {
	DID     string `json:"did"`
	Address string `json:"address"`
	Network string `json:"network"`
}

func toDIDResponse(did identity.DID) DIDResponse {
	b, err := identity.ParseDID(did.String())
	if err != nil {
		return DIDResponse{DID: did.String()}
	}
	return DIDResponse{DID: did.String(), Address: b.Address, Network: b.Network}
}

// HandleGetDID returns the persisted DID, or the DID derived from the
// ?address= query parameter when nothing is persisted.
func (h *Handler) HandleGetDID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address := strings.TrimSpace(r.URL.Query().Get("address"))

	did, ok := h.service.CurrentDID(ctx, address)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no identity available"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDIDResponse(did))
}

// HandleSaveDID derives and persists the DID of the session wallet.
func (h *Handler) HandleSaveDID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	wallet, err := httputil.RequireWallet(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	did, ok := h.service.SaveComputedDID(ctx, wallet.Address.String())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodePrecondition, "Connect your wallet first"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDIDResponse(did))
}

// HandleClearDID removes the persisted DID. The DID is shared state, so a
// wallet session is required.
func (h *Handler) HandleClearDID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	wallet, err := httputil.RequireWallet(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Clear(ctx); err != nil {
		h.logger.ErrorContext(ctx, "clear owner DID failed", "error", err, "request_id", requestID, "wallet", wallet.Address.String())
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear identity"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
