package negotiation

import (
	"context"

	"github.com/viant/pact/model"
	"github.com/viant/pact/service/dao"
)

// Service extends the generic DAO contract with a content-ref lookup; the
// unique content index backs the one-negotiation-per-content guarantee.
type Service interface {
	dao.Service[string, model.Negotiation]

	// LookupByContent returns the negotiation bound to the content
	// reference, or (nil, nil) when the content has none.
	LookupByContent(ctx context.Context, ref model.ContentRef) (*model.Negotiation, error)
}
