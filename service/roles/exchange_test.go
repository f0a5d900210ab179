package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/pact/model"
)

func newNegotiation(starter string) *model.Negotiation {
	return &model.Negotiation{
		ID:      "n1",
		Starter: starter,
		Client:  model.NewParty("", "pedro", "juan"),
		Seller:  model.NewParty("", "pablo"),
		State:   model.StateNegotiating,
	}
}

func TestInit(t *testing.T) {
	testCases := []struct {
		name      string
		starter   string
		expect    model.Side
		expectErr bool
	}{
		{
			name:    "client member starts",
			starter: "pedro",
			expect:  model.SideClient,
		},
		{
			name:    "seller member starts",
			starter: "pablo",
			expect:  model.SideSeller,
		},
		{
			name:      "stranger starts",
			starter:   "nobody",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			negotiation := newNegotiation(tc.starter)
			err := Init(negotiation)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, negotiation.TurnHolder)
		})
	}
}

func TestExchange_FlipAndHold(t *testing.T) {
	negotiation := newNegotiation("pedro")
	assert.NoError(t, Init(negotiation))

	// exactly one side holds each role
	assert.True(t, HoldsLastUpdater(negotiation, "pedro"))
	assert.True(t, HoldsLastUpdater(negotiation, "juan"))
	assert.True(t, HoldsCounterpart(negotiation, "pablo"))
	assert.False(t, HoldsLastUpdater(negotiation, "pablo"))
	assert.False(t, HoldsCounterpart(negotiation, "pedro"))

	// hand-off is atomic: one call flips both sides
	MakeLastUpdater(negotiation, model.SideSeller)
	assert.True(t, HoldsLastUpdater(negotiation, "pablo"))
	assert.True(t, HoldsCounterpart(negotiation, "pedro"))

	MakeCounterpart(negotiation, model.SideSeller)
	assert.True(t, HoldsLastUpdater(negotiation, "pedro"))
	assert.True(t, HoldsCounterpart(negotiation, "pablo"))

	// users outside both parties hold nothing
	assert.False(t, HoldsLastUpdater(negotiation, "stranger"))
	assert.False(t, HoldsCounterpart(negotiation, "stranger"))
}

func TestHolds(t *testing.T) {
	negotiation := newNegotiation("pedro")
	assert.NoError(t, Init(negotiation))

	assert.True(t, Holds(negotiation, "pedro", model.RoleLastUpdater))
	assert.True(t, Holds(negotiation, "pablo", model.RoleCounterpart))
	assert.False(t, Holds(negotiation, "pedro", model.RoleCounterpart))
	assert.False(t, Holds(negotiation, "pedro", "OWNER"))
}
