package extension

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/viant/structology/conv"
	"github.com/viant/x"
)

// Types keeps the registry of snapshot Go types keyed by content kind.
// Registration is optional: unregistered kinds decode into generic maps,
// registered kinds decode back into their original typed value.
type Types struct {
	registry  *x.Registry
	converter *conv.Converter
}

// Register adds a snapshot type under the given content kind.
func (t *Types) Register(kind string, rType reflect.Type) {
	t.registry.Register(x.NewType(rType, x.WithName(kind)))
}

// RegisterType adds a pre-built type descriptor.
func (t *Types) RegisterType(aType *x.Type) {
	t.registry.Register(aType)
}

// Lookup returns the snapshot type registered for the kind, or nil.
func (t *Types) Lookup(kind string) *x.Type {
	return t.registry.Lookup(kind)
}

// Decode reconstructs a history snapshot. When a type is registered for the
// kind the result is a pointer to a typed value, otherwise a generic map.
func (t *Types) Decode(kind string, snapshot json.RawMessage) (interface{}, error) {
	if len(snapshot) == 0 {
		return nil, nil
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(snapshot, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	registered := t.Lookup(kind)
	if registered == nil {
		return generic, nil
	}
	instance := reflect.New(registered.Type).Interface()
	if err := t.converter.Convert(generic, instance); err != nil {
		return nil, fmt.Errorf("failed to convert snapshot to %s: %w", kind, err)
	}
	return instance, nil
}

// NewTypes creates a snapshot type registry.
func NewTypes(options ...x.RegistryOption) *Types {
	converterOptions := conv.DefaultOptions()
	converterOptions.ClonePointerData = true
	converterOptions.IgnoreUnmapped = true
	return &Types{
		registry:  x.NewRegistry(options...),
		converter: conv.NewConverter(converterOptions),
	}
}
