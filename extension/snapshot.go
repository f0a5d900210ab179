package extension

import (
	"encoding/json"
	"fmt"

	"github.com/viant/toolbox"
)

// FreezeSnapshot freezes the content and marshals the result for the
// history log. Struct values are coerced to a generic map first so that
// snapshots stay schema-stable regardless of how a content type serializes
// itself.
func FreezeSnapshot(content Negotiable) (json.RawMessage, error) {
	frozen, err := content.Freeze()
	if err != nil {
		return nil, fmt.Errorf("failed to freeze content %v: %w", content.ContentRef().Key(), err)
	}
	if frozen == nil {
		return nil, nil
	}
	normalized := normalize(frozen)
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot for %v: %w", content.ContentRef().Key(), err)
	}
	return data, nil
}

func normalize(value interface{}) interface{} {
	switch value.(type) {
	case map[string]interface{}, []interface{}, string, bool,
		int, int64, float32, float64, json.RawMessage:
		return value
	}
	if toolbox.IsStruct(value) || toolbox.IsMap(value) {
		return toolbox.AsMap(value)
	}
	return value
}
