package domain

import "strings"

// Value is an option value: either a scalar string or an ordered list
// of strings. List equality is order-sensitive; [a,b] != [b,a].
type Value struct {
	scalar string
	list   []string
	isList bool
}

// String constructs a scalar value.
func String(s string) Value {
	return Value{scalar: s}
}

// List constructs an ordered list value.
func List(entries ...string) Value {
	return Value{list: append([]string(nil), entries...), isList: true}
}

// IsList reports whether the value is a list option.
func (v Value) IsList() bool {
	return v.isList
}

// Scalar returns the scalar string. Empty for list values.
func (v Value) Scalar() string {
	return v.scalar
}

// Entries returns a copy of the list entries. Nil for scalar values.
func (v Value) Entries() []string {
	if !v.isList {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Equal reports whether two values are equal. Lists are compared
// entry-for-entry in order. A scalar equals a single-entry list with
// the same string: the store's export format prints both identically,
// so distinguishing them would break idempotence.
func (v Value) Equal(o Value) bool {
	if v.isList != o.isList {
		if v.isList {
			return len(v.list) == 1 && v.list[0] == o.scalar
		}
		return len(o.list) == 1 && o.list[0] == v.scalar
	}
	if !v.isList {
		return v.scalar == o.scalar
	}
	if len(v.list) != len(o.list) {
		return false
	}
	for i := range v.list {
		if v.list[i] != o.list[i] {
			return false
		}
	}
	return true
}

// Display renders the value for logs and plan output.
func (v Value) Display() string {
	if v.isList {
		return "[" + strings.Join(v.list, ", ") + "]"
	}
	return v.scalar
}
