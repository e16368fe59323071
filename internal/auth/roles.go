package auth

import (
	"sort"
	"strings"
)

// RoleEmployee is the restricted role. Holders only see the self-service surface.
const RoleEmployee = "employee"

// RoleSet is a set of lowercase role names. An empty set means the token
// carried no role information, which is not the same as being restricted.
type RoleSet map[string]struct{}

// NormalizeRoles flattens raw role claim values into a RoleSet.
//
// Each value may be nil, a string (optionally comma separated) or an array;
// non-string array elements are ignored.
func NormalizeRoles(values ...any) RoleSet {
	set := RoleSet{}
	for _, v := range values {
		switch raw := v.(type) {
		case string:
			set.addCSV(raw)
		case []string:
			for _, s := range raw {
				set.addCSV(s)
			}
		case []any:
			for _, e := range raw {
				if s, ok := e.(string); ok {
					set.addCSV(s)
				}
			}
		}
	}
	return set
}

func (s RoleSet) addCSV(v string) {
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			s[part] = struct{}{}
		}
	}
}

func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Restricted reports whether every role is the employee role.
// It is false for an empty set.
func (s RoleSet) Restricted() bool {
	if len(s) == 0 {
		return false
	}
	for r := range s {
		if r != RoleEmployee {
			return false
		}
	}
	return true
}

// Sorted returns the roles in lexical order.
func (s RoleSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
