package dao

// Parameter is a named list filter: a field name paired with the value(s)
// a matching record must carry, e.g. State or ContentKind.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter builds a filter; a single value stays scalar, several become
// an any-of match.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
