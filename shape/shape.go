// Package shape implements the shape-expression grammar and matcher for
// array specifications.
//
// A shape expression is a comma-separated list of dimension tokens,
// optionally terminated by "..." (any number of further dimensions):
//
//	"2, 3"        exactly rank 2, dims 2 and 3
//	"3, *"        rank 2, first dim 3, second anything
//	"2-4, *-5"    inclusive ranges; "*" leaves a bound open
//	"3 x, 4 y"    labels (lowercase words) document an axis, never enforced
//	"*, ..."      rank >= 1, anything
//	"..."         any rank, including scalars
//	""            scalars only (rank 0)
//
// Specs are immutable after Parse and safe for concurrent use.
package shape

import (
	"strconv"
	"strings"
)

// Unbounded marks an open range bound.
const Unbounded = -1

// Constraint restricts a single axis. Min/Max are inclusive; Unbounded (-1)
// leaves that side open. Exact sizes have Min == Max. Label is purely
// descriptive and propagated to generated schemas, never enforced.
type Constraint struct {
	Min   int
	Max   int
	Label string
}

// Exact returns a constraint requiring dimension size n.
func Exact(n int) Constraint { return Constraint{Min: n, Max: n} }

// Range returns an inclusive range constraint. Pass Unbounded to leave a
// side open.
func Range(min, max int) Constraint { return Constraint{Min: min, Max: max} }

// Wildcard returns a constraint matching any size.
func Wildcard() Constraint { return Constraint{Min: Unbounded, Max: Unbounded} }

// WithLabel returns a copy of c carrying a descriptive label.
func (c Constraint) WithLabel(label string) Constraint { c.Label = label; return c }

// IsWildcard reports whether the constraint accepts any size.
func (c Constraint) IsWildcard() bool { return c.Min == Unbounded && c.Max == Unbounded }

// IsExact reports whether the constraint pins the axis to a single size.
func (c Constraint) IsExact() bool { return c.Min != Unbounded && c.Min == c.Max }

// Contains reports whether size satisfies the constraint.
func (c Constraint) Contains(size int) bool {
	if c.Min != Unbounded && size < c.Min {
		return false
	}
	if c.Max != Unbounded && size > c.Max {
		return false
	}
	return true
}

// String renders the constraint in expression syntax, without its label.
func (c Constraint) String() string {
	switch {
	case c.IsWildcard():
		return "*"
	case c.IsExact():
		return strconv.Itoa(c.Min)
	}
	lo, hi := "*", "*"
	if c.Min != Unbounded {
		lo = strconv.Itoa(c.Min)
	}
	if c.Max != Unbounded {
		hi = strconv.Itoa(c.Max)
	}
	return lo + "-" + hi
}

// Spec is a parsed shape constraint: an ordered list of per-axis constraints
// plus an optional unbounded tail.
type Spec struct {
	dims []Constraint
	tail bool
	expr string
}

// New builds a Spec directly from constraints. tail marks the spec as
// accepting any number of further dimensions.
func New(tail bool, dims ...Constraint) Spec {
	s := Spec{dims: append([]Constraint(nil), dims...), tail: tail}
	s.expr = s.render()
	return s
}

// Any returns the spec matching every shape, including scalars.
func Any() Spec { return New(true) }

// Rank returns the number of fixed (non-tail) axis constraints.
func (s Spec) Rank() int { return len(s.dims) }

// Unbounded reports whether the spec ends in "...".
func (s Spec) Unbounded() bool { return s.tail }

// Dims returns a copy of the fixed axis constraints.
func (s Spec) Dims() []Constraint { return append([]Constraint(nil), s.dims...) }

// Dim returns the constraint for fixed axis i.
func (s Spec) Dim(i int) Constraint { return s.dims[i] }

// String returns the normalized shape expression.
func (s Spec) String() string { return s.expr }

func (s Spec) render() string {
	parts := make([]string, 0, len(s.dims)+1)
	for _, c := range s.dims {
		if c.Label != "" {
			parts = append(parts, c.String()+" "+c.Label)
		} else {
			parts = append(parts, c.String())
		}
	}
	if s.tail {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}

// Matches reports whether dims satisfies the spec.
func (s Spec) Matches(dims []int) bool { return s.Match(dims) == nil }

// Match checks dims against the spec positionally, short-circuiting on the
// first failing axis. The returned error is always a *Mismatch.
//
// Without a tail, ranks must be equal. With a tail, rank must be at least
// the number of fixed constraints; trailing axes are unconstrained.
func (s Spec) Match(dims []int) error {
	if s.tail {
		if len(dims) < len(s.dims) {
			return &Mismatch{Spec: s, Axis: RankAxis, GotRank: len(dims)}
		}
	} else if len(dims) != len(s.dims) {
		return &Mismatch{Spec: s, Axis: RankAxis, GotRank: len(dims)}
	}
	for i, c := range s.dims {
		if !c.Contains(dims[i]) {
			return &Mismatch{Spec: s, Axis: i, Constraint: c, Got: dims[i]}
		}
	}
	return nil
}

// RankAxis marks a Mismatch caused by the overall rank rather than a
// single axis.
const RankAxis = -1

// Mismatch describes why a concrete shape failed a Spec.
type Mismatch struct {
	Spec       Spec
	Axis       int // RankAxis for rank mismatches
	Constraint Constraint
	Got        int
	GotRank    int
}

func (e *Mismatch) Error() string {
	b := &strings.Builder{}
	b.WriteString("shape mismatch: ")
	if e.Axis == RankAxis {
		b.WriteString("expected rank ")
		if e.Spec.tail {
			b.WriteString(">= ")
		}
		b.WriteString(strconv.Itoa(len(e.Spec.dims)))
		b.WriteString(", got ")
		b.WriteString(strconv.Itoa(e.GotRank))
	} else {
		b.WriteString("axis ")
		b.WriteString(strconv.Itoa(e.Axis))
		b.WriteString(" expects ")
		b.WriteString(e.Constraint.String())
		b.WriteString(", got ")
		b.WriteString(strconv.Itoa(e.Got))
	}
	b.WriteString(" (spec ")
	b.WriteString(strconv.Quote(e.Spec.String()))
	b.WriteString(")")
	return b.String()
}
