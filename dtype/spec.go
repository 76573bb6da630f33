package dtype

import "strings"

// Spec is an element-type constraint: a leaf Kind, a Family descriptor, a
// flattened union of either, or the any-dtype constraint.
//
// The zero Spec is the any-dtype constraint, matching every kind.
type Spec struct {
	kind    Kind
	family  Family
	members []Spec
}

// Any returns the constraint matching every element type.
func Any() Spec { return Spec{} }

// Of returns a leaf constraint matching exactly the given kind.
func Of(k Kind) Spec { return Spec{kind: k} }

// Generic returns a family constraint matching every kind in the family.
func Generic(f Family) Spec { return Spec{family: f} }

// Union returns a constraint matched when any member matches. Nested unions
// flatten and duplicate members collapse, preserving first-occurrence
// order, so Union(Union(a,b), c) is equivalent to Union(a, b, c). A union
// containing an any-dtype member collapses to Any. Union of a single
// member is that member.
func Union(members ...Spec) Spec {
	flat := make([]Spec, 0, len(members))
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		for _, leaf := range m.leaves() {
			if leaf.IsAny() {
				return Any()
			}
			key := leaf.Canonical()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			flat = append(flat, leaf)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Spec{members: flat}
}

func (s Spec) leaves() []Spec {
	if !s.IsUnion() {
		return []Spec{s}
	}
	out := make([]Spec, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m.leaves()...)
	}
	return out
}

// IsAny reports whether the spec matches every kind.
func (s Spec) IsAny() bool {
	return s.kind == Invalid && s.family == FamilyInvalid && len(s.members) == 0
}

// IsUnion reports whether the spec is a union of constraints.
func (s Spec) IsUnion() bool { return len(s.members) > 0 }

// Kind returns the leaf kind, if the spec is a single-kind constraint.
func (s Spec) Kind() (Kind, bool) { return s.kind, s.kind != Invalid }

// Family returns the family, if the spec is a family constraint.
func (s Spec) Family() (Family, bool) { return s.family, s.family != FamilyInvalid }

// Members returns a copy of the union members. Leaf specs return
// themselves as the single member.
func (s Spec) Members() []Spec {
	if !s.IsUnion() {
		return []Spec{s}
	}
	return append([]Spec(nil), s.members...)
}

// Matches reports whether a concrete kind satisfies the constraint. Union
// members are tried left to right, first success wins.
func (s Spec) Matches(k Kind) bool {
	switch {
	case s.IsAny():
		return true
	case s.kind != Invalid:
		return k == s.kind
	case s.family != FamilyInvalid:
		return s.family.Contains(k)
	}
	for _, m := range s.members {
		if m.Matches(k) {
			return true
		}
	}
	return false
}

// Canonical renders the constraint in the textual dtype grammar, flattened
// and deduplicated. Structurally equivalent specs render identically, so
// the canonical form doubles as the spec's identity for hashing.
func (s Spec) Canonical() string {
	switch {
	case s.IsAny():
		return "any"
	case s.kind != Invalid:
		return s.kind.String()
	case s.family != FamilyInvalid:
		return s.family.String()
	}
	parts := make([]string, len(s.members))
	for i, m := range s.members {
		parts[i] = m.Canonical()
	}
	return strings.Join(parts, " | ")
}

// String is Canonical.
func (s Spec) String() string { return s.Canonical() }

// Equal reports structural equality after flattening.
func (s Spec) Equal(o Spec) bool { return s.Canonical() == o.Canonical() }
