package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDefinition(t *testing.T) {
	def := DefaultDefinition()
	assert.NoError(t, def.Validate())
	assert.Equal(t, StateNegotiating, def.Initial)
	assert.True(t, def.IsTerminal(StateAccepted))
	assert.True(t, def.IsTerminal(StateCancelled))
	assert.False(t, def.IsTerminal(StateNegotiating))

	negotiate := def.Lookup(TransitionNegotiate)
	if assert.NotNil(t, negotiate) {
		assert.True(t, negotiate.FlipsTurn)
		assert.Equal(t, RoleCounterpart, negotiate.Role)
	}
	modify := def.Lookup(TransitionModify)
	if assert.NotNil(t, modify) {
		assert.False(t, modify.FlipsTurn)
		assert.Equal(t, RoleLastUpdater, modify.Role)
	}
}

func TestDecodeDefinition(t *testing.T) {
	testCases := []struct {
		name      string
		data      string
		expectErr bool
	}{
		{
			name: "valid definition",
			data: `
name: haggle
initial: Negotiating
states:
  - name: Negotiating
  - name: Accepted
    terminal: true
transitions:
  - name: accept
    destination: Accepted
    role: COUNTERPART
`,
		},
		{
			name: "unknown destination",
			data: `
name: haggle
initial: Negotiating
states:
  - name: Negotiating
transitions:
  - name: accept
    destination: Accepted
    role: COUNTERPART
`,
			expectErr: true,
		},
		{
			name: "unknown role",
			data: `
name: haggle
initial: Negotiating
states:
  - name: Negotiating
transitions:
  - name: accept
    destination: Negotiating
    role: OWNER
`,
			expectErr: true,
		},
		{
			name: "terminal initial state",
			data: `
name: haggle
initial: Accepted
states:
  - name: Accepted
    terminal: true
transitions:
  - name: accept
    destination: Accepted
    role: COUNTERPART
`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def, err := DecodeDefinition([]byte(tc.data))
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, def)
		})
	}
}
