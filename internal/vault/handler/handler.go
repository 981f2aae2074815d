package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"actavc/internal/vault"
	"actavc/pkg/platform/httputil"
	"actavc/pkg/requestcontext"
)

// Service is the vault surface the handler needs.
type Service interface {
	CreateVault(ctx context.Context, walletAddress string) (*vault.TxResult, error)
	AuthorizeIssuer(ctx context.Context, walletAddress string) (*vault.TxResult, error)
	ListIDs(ctx context.Context, walletAddress string) ([]string, error)
	Get(ctx context.Context, walletAddress, vcID string) (*vault.Record, error)
	Verify(ctx context.Context, walletAddress, vcID string) (map[string]any, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterProtected mounts the vault routes. All of them need a wallet session.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/vault", h.HandleCreateVault)
	r.Post("/vault/issuers", h.HandleAuthorizeIssuer)
	r.Get("/vault/credentials", h.HandleList)
	r.Get("/vault/credentials/{id}", h.HandleGet)
	r.Post("/vault/credentials/{id}/verify", h.HandleVerify)
}

type ListResponse struct {
	IDs []string `json:"ids"`
}

type VerifyResponse struct {
	VCID         string         `json:"vc_id"`
	Verification map[string]any `json:"verification"`
}

func (h *Handler) HandleCreateVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.CreateVault(ctx, walletAddress(ctx))
	if err != nil {
		h.fail(ctx, w, "create vault", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) HandleAuthorizeIssuer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.AuthorizeIssuer(ctx, walletAddress(ctx))
	if err != nil {
		h.fail(ctx, w, "authorize issuer", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ids, err := h.service.ListIDs(ctx, walletAddress(ctx))
	if err != nil {
		h.fail(ctx, w, "list credentials", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{IDs: ids})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, err := h.service.Get(ctx, walletAddress(ctx), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "get credential", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vcID := chi.URLParam(r, "id")
	res, err := h.service.Verify(ctx, walletAddress(ctx), vcID)
	if err != nil {
		h.fail(ctx, w, "verify credential", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{VCID: vcID, Verification: res})
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, action string, err error) {
	h.logger.WarnContext(ctx, action+" failed", "error", err, "request_id", requestcontext.RequestID(ctx))
	httputil.WriteError(w, err)
}

func walletAddress(ctx context.Context) string {
	return requestcontext.WalletAddress(ctx).String()
}
