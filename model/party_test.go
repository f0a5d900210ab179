package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsParty(t *testing.T) {
	testCases := []struct {
		name      string
		input     interface{}
		expect    []string
		expectErr bool
	}{
		{
			name:   "single user becomes singleton party",
			input:  "pedro",
			expect: []string{"pedro"},
		},
		{
			name:   "user slice",
			input:  []string{"pedro", "juan", "pedro"},
			expect: []string{"pedro", "juan"},
		},
		{
			name:   "existing party passes through",
			input:  NewParty("buyers", "pedro", "juan"),
			expect: []string{"pedro", "juan"},
		},
		{
			name:      "empty user",
			input:     "",
			expectErr: true,
		},
		{
			name:      "empty slice",
			input:     []string{},
			expectErr: true,
		},
		{
			name:      "unsupported type",
			input:     42,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			party, err := AsParty(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, party.Users)
		})
	}
}

func TestParty_Contains(t *testing.T) {
	party := NewParty("buyers", "pedro", "juan")
	assert.True(t, party.Contains("pedro"))
	assert.False(t, party.Contains("pablo"))
	assert.False(t, Party{}.Contains("pedro"))
}

func TestNegotiation_Sides(t *testing.T) {
	negotiation := &Negotiation{
		Client:     NewParty("", "pedro", "juan"),
		Seller:     NewParty("", "pablo"),
		State:      StateNegotiating,
		TurnHolder: SideClient,
	}
	assert.Equal(t, SideSeller, negotiation.Counterpart())

	side, ok := negotiation.SideOf("pablo")
	assert.True(t, ok)
	assert.Equal(t, SideSeller, side)

	_, ok = negotiation.SideOf("stranger")
	assert.False(t, ok)

	negotiation.TurnHolder = SideSeller
	assert.Equal(t, SideClient, negotiation.Counterpart())
}
