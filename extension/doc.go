// Package extension defines the Negotiable contract a content object must
// satisfy to take part in a negotiation, together with a run-time registry
// of snapshot types so history entries can be decoded back into the Go
// types they were frozen from.
//
// The registry is normally populated through the public APIs under the
// root pact package, therefore most applications do not need to import
// this package directly.
package extension
