package criteria

import (
	"github.com/viant/pact/service/dao"
)

// Match reports whether a field value satisfies the parameter filters. It
// understands single-value and multi-value parameters keyed by field name;
// unknown parameters do not restrict the result.
func Match(field, value string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != field {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if value != actual {
				return false
			}
		case []string:
			matched := false
			for _, candidate := range actual {
				if value == candidate {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}
