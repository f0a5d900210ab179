package event

import (
	"time"

	"github.com/viant/pact/model"
)

// Standard event topics.
const (
	TopicNegotiationCreated   = "negotiation.created"
	TopicNegotiationAccepted  = "negotiation.accepted"
	TopicNegotiationCancelled = "negotiation.cancelled"
	TopicProposalCountered    = "proposal.countered"
	TopicProposalModified     = "proposal.modified"
)

// Event describes a single negotiation action for downstream consumers
// (notifications, projections, audit).
type Event struct {
	Topic         string                 `json:"topic"`
	NegotiationID string                 `json:"negotiationId"`
	Content       model.ContentRef       `json:"content"`
	Actor         string                 `json:"actor,omitempty"`
	Side          model.Side             `json:"side,omitempty"`
	State         string                 `json:"state,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent creates an event for the given topic and negotiation.
func NewEvent(topic string, n *model.Negotiation, actor string) *Event {
	side, _ := n.SideOf(actor)
	return &Event{
		Topic:         topic,
		NegotiationID: n.ID,
		Content:       n.Content,
		Actor:         actor,
		Side:          side,
		State:         n.State,
		Notes:         n.Notes,
		Metadata:      make(map[string]interface{}),
	}
}
