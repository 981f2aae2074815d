package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time     `json:"timestamp"`
	Category  EventCategory `json:"category"`
	Action    string        `json:"action"`
	Wallet    string        `json:"wallet,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	TxID      string        `json:"tx_id,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

// Store persists audit events. Implementations must be append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
}

type EventCategory string

const (
	CategoryCompliance EventCategory = "compliance"
	CategorySecurity   EventCategory = "security"
	CategoryOperations EventCategory = "operations"
)

type AuditEvent string

const (
	EventWalletConnected    AuditEvent = "wallet_connected"
	EventWalletDisconnected AuditEvent = "wallet_disconnected"
	EventDIDSaved           AuditEvent = "did_saved"
	EventDIDReconciled      AuditEvent = "did_reconciled"
	EventDIDCleared         AuditEvent = "did_cleared"
	EventVCIssued           AuditEvent = "vc_issued"
	EventVCIssueFailed      AuditEvent = "vc_issue_failed"
	EventVaultCreated       AuditEvent = "vault_created"
	EventIssuerAuthorized   AuditEvent = "issuer_authorized"
	EventVCVerified         AuditEvent = "vc_verified"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVCIssued:           CategoryCompliance,
	EventVaultCreated:       CategoryCompliance,
	EventIssuerAuthorized:   CategoryCompliance,
	EventDIDSaved:           CategoryCompliance,
	EventDIDReconciled:      CategoryCompliance,
	EventDIDCleared:         CategoryCompliance,
	EventWalletConnected:    CategorySecurity,
	EventWalletDisconnected: CategorySecurity,
	EventVCIssueFailed:      CategorySecurity,
	EventVCVerified:         CategoryOperations,
}

// Category returns the routing category of the event. Unknown events are operational.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}
