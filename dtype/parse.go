package dtype

import (
	"strconv"
	"strings"
)

var kindsByName = map[string]Kind{
	"bool":       Bool,
	"int8":       Int8,
	"int16":      Int16,
	"int32":      Int32,
	"int64":      Int64,
	"uint8":      Uint8,
	"uint16":     Uint16,
	"uint32":     Uint32,
	"uint64":     Uint64,
	"float16":    Float16,
	"float32":    Float32,
	"float64":    Float64,
	"complex64":  Complex64,
	"complex128": Complex128,
	"string":     String,
	"time":       Time,
	"object":     Object,
}

var familiesByName = map[string]Family{
	"signed":   Signed,
	"unsigned": Unsigned,
	"uint":     Unsigned,
	"int":      Integer,
	"integer":  Integer,
	"float":    Float,
	"complex":  Complex,
	"number":   Number,
}

// SyntaxError reports a malformed dtype expression.
type SyntaxError struct {
	Expr  string
	Token string
}

func (e *SyntaxError) Error() string {
	return "invalid dtype expression " + strconv.Quote(e.Expr) +
		": unknown dtype " + strconv.Quote(e.Token)
}

// Parse parses a dtype expression: a kind name, a family name, "any", or a
// "|"-separated union of those, e.g. "uint8 | float32" or "int | float".
// Failures return a *SyntaxError.
func Parse(expr string) (Spec, error) {
	tokens := strings.Split(expr, "|")
	members := make([]Spec, 0, len(tokens))
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		switch {
		case tok == "any":
			members = append(members, Any())
		case kindsByName[tok] != Invalid:
			members = append(members, Of(kindsByName[tok]))
		case familiesByName[tok] != FamilyInvalid:
			members = append(members, Generic(familiesByName[tok]))
		default:
			return Spec{}, &SyntaxError{Expr: expr, Token: tok}
		}
	}
	return Union(members...), nil
}

// MustParse is Parse for statically known expressions; it panics on error.
func MustParse(expr string) Spec {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// KindByName resolves a kind name ("uint8", "string", ...).
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}
