package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events that record registry state changes.
	// Examples: alias minted, administrator changed.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to access control.
	// Examples: mint denied by policy, rejected administrator change.
	CategorySecurity EventCategory = "security"

	// CategoryOperations is the fallback for actions without a mapping.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted after a registry operation. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	// Subject is the primary address the event is about.
	Subject string `json:"subject"`
	Action  string `json:"action"`
	// TokenID is set for events tied to a receipt token.
	TokenID uint64 `json:"token_id,omitempty"`
	// Detail carries the action-specific value, e.g. the claimed secondary address.
	Detail    string `json:"detail,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	// ActorID is the caller when it differs from Subject.
	ActorID string `json:"actor_id,omitempty"`
}

type AuditEvent string

const (
	EventAliasMinted             AuditEvent = "alias_minted"
	EventMintDenied              AuditEvent = "mint_denied"
	EventAdministratorChanged    AuditEvent = "administrator_changed"
	EventAdminActionDenied       AuditEvent = "admin_action_denied"
	EventContractMetadataUpdated AuditEvent = "contract_metadata_updated"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAliasMinted:             CategoryCompliance,
	EventAdministratorChanged:    CategoryCompliance,
	EventContractMetadataUpdated: CategoryCompliance,

	EventMintDenied:        CategorySecurity,
	EventAdminActionDenied: CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
