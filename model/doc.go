// Package model contains the in-memory representation of a negotiation:
// the Negotiation entity itself, the two negotiating parties, the
// append-only history entries and the declarative workflow Definition that
// the engine validates transitions against.
//
// A definition is typically built via DefaultDefinition, but can also be
// loaded from a YAML document through DecodeDefinition.
package model
