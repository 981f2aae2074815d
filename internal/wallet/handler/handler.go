package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"actavc/internal/wallet"
	dErrors "actavc/pkg/domain-errors"
	"actavc/pkg/platform/httputil"
	"actavc/pkg/requestcontext"
)

// Service is the wallet session surface the handler needs.
type Service interface {
	Connect(ctx context.Context, req wallet.ConnectRequest) (*wallet.ConnectResult, error)
	Restore(ctx context.Context) (wallet.Session, bool)
	Disconnect(ctx context.Context) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/wallet/session", h.HandleConnect)
	r.Get("/wallet/session", h.HandleRestore)
}

// RegisterProtected mounts routes that need a wallet session.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Delete("/wallet/session", h.HandleDisconnect)
}

// ConnectRequest selects the wallet module by id or display name.
type ConnectRequest struct {
	WalletID   string `json:"wallet_id"`
	WalletName string `json:"wallet_name"`
}

func (r *ConnectRequest) Normalize() {
	r.WalletID = strings.ToLower(strings.TrimSpace(r.WalletID))
	r.WalletName = strings.TrimSpace(r.WalletName)
}

func (r *ConnectRequest) Validate() error {
	if r.WalletID == "" && r.WalletName == "" {
		return dErrors.New(dErrors.CodeValidation, "wallet_id or wallet_name is required")
	}
	return nil
}

type ConnectResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Wallet    wallet.Session `json:"wallet"`
	DID       string         `json:"did,omitempty"`
}

// HandleConnect connects the selected wallet and returns a session token.
func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ConnectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	userAgent := requestcontext.UserAgent(ctx)
	if userAgent == "" {
		userAgent = r.UserAgent()
	}

	res, err := h.service.Connect(ctx, wallet.ConnectRequest{
		ModuleID:  req.WalletID,
		Name:      req.WalletName,
		UserAgent: userAgent,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "wallet connect failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &ConnectResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Wallet:    res.Session,
		DID:       res.DID.String(),
	})
}

// HandleRestore returns the persisted wallet display state.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	session, ok := h.service.Restore(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no wallet connected"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

// HandleDisconnect forgets the connected wallet.
func (h *Handler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if _, err := httputil.RequireWallet(ctx, h.logger, requestID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Disconnect(ctx); err != nil {
		h.logger.ErrorContext(ctx, "wallet disconnect failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
