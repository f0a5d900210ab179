package model

import "fmt"

// Party represents a non-empty set of user identities acting as one side of
// a negotiation. Membership is fixed at creation time.
type Party struct {
	Name  string   `json:"name,omitempty"`
	Users []string `json:"users"`
}

// NewParty creates a named party with the supplied members.
func NewParty(name string, users ...string) Party {
	return Party{Name: name, Users: dedupe(users)}
}

// Contains reports whether user is a member of the party.
func (p Party) Contains(user string) bool {
	for _, candidate := range p.Users {
		if candidate == user {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the party has no members.
func (p Party) IsEmpty() bool {
	return len(p.Users) == 0
}

// Clone returns a copy with an independent member slice.
func (p Party) Clone() Party {
	ret := p
	ret.Users = append([]string(nil), p.Users...)
	return ret
}

// AsParty normalizes raw party inputs: a bare user identity becomes a
// singleton party, a slice of identities becomes an anonymous party, and an
// existing Party passes through unchanged.
func AsParty(value interface{}) (Party, error) {
	switch actual := value.(type) {
	case Party:
		if actual.IsEmpty() {
			return Party{}, fmt.Errorf("party %q has no members", actual.Name)
		}
		return actual.Clone(), nil
	case *Party:
		if actual == nil {
			return Party{}, fmt.Errorf("party was nil")
		}
		return AsParty(*actual)
	case string:
		if actual == "" {
			return Party{}, fmt.Errorf("user identity was empty")
		}
		return Party{Users: []string{actual}}, nil
	case []string:
		if len(actual) == 0 {
			return Party{}, fmt.Errorf("party member list was empty")
		}
		return Party{Users: dedupe(actual)}, nil
	}
	return Party{}, fmt.Errorf("unsupported party type %T", value)
}

func dedupe(users []string) []string {
	seen := map[string]bool{}
	var ret []string
	for _, user := range users {
		if user == "" || seen[user] {
			continue
		}
		seen[user] = true
		ret = append(ret, user)
	}
	return ret
}
