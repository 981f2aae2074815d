package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"actavc/internal/credential"
	"actavc/pkg/platform/httputil"
	"actavc/pkg/requestcontext"
)

// Service is the credential surface the handler needs.
type Service interface {
	Issue(ctx context.Context, walletAddress string, form credential.Form) (*credential.Result, error)
	ListIssuances(ctx context.Context, owner string) ([]credential.Issuance, error)
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
	r.Get("/credentials/example", h.HandleExample)
}

// RegisterProtected mounts routes that need a wallet session.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/credentials", h.HandleIssue)
	r.Get("/credentials/issuances", h.HandleListIssuances)
}

// IssuanceResponse is one entry of the local issuance log.
type IssuanceResponse struct {
	ID          string    `json:"id"`
	VCID        string    `json:"vc_id"`
	TxID        string    `json:"tx_id"`
	IssuerDID   string    `json:"issuer_did"`
	ExplorerURL string    `json:"explorer_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type IssuancesResponse struct {
	Issuances []IssuanceResponse `json:"issuances"`
}

// HandleExample returns the sample form data.
func (h *Handler) HandleExample(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, credential.ExampleFields())
}

// HandleIssue builds and submits a credential for the session wallet.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	form, ok := httputil.DecodeJSON[credential.Form](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Issue(ctx, requestcontext.WalletAddress(ctx).String(), *form)
	if err != nil {
		h.logger.WarnContext(ctx, "credential issuance failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

// HandleListIssuances returns the session wallet's issuance log.
func (h *Handler) HandleListIssuances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	wallet, err := httputil.RequireWallet(ctx, h.logger, requestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	issuances, err := h.service.ListIssuances(ctx, wallet.Address.String())
	if err != nil {
		h.logger.ErrorContext(ctx, "list issuances failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	resp := IssuancesResponse{Issuances: make([]IssuanceResponse, 0, len(issuances))}
	for _, iss := range issuances {
		resp.Issuances = append(resp.Issuances, IssuanceResponse{
			ID:          iss.ID.String(),
			VCID:        iss.VCID,
			TxID:        iss.TxID,
			IssuerDID:   iss.IssuerDID,
			ExplorerURL: credential.ExplorerURL(iss.TxID),
			CreatedAt:   iss.CreatedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
