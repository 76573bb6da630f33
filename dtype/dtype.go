// Package dtype models element-type constraints for array specifications:
// scalar kinds, generic numeric families, and unions of either.
//
// Kinds identify the concrete element type of an array (uint8, float32,
// string, ...). A Spec constrains which kinds an array may hold; it is a
// leaf kind, a family ("any integer"), or a union that flattens
// recursively. Specs are immutable and safe for concurrent use.
package dtype

// Kind identifies a concrete array element type.
type Kind uint8

const (
	Invalid Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
	Complex64
	Complex128
	String
	Time
	// Object marks arrays whose elements are arbitrary Go values rather
	// than a fixed-width scalar. Element checks on object arrays are
	// sampled, not exhaustive.
	Object
)

var kindNames = map[Kind]string{
	Bool:       "bool",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Float16:    "float16",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
	String:     "string",
	Time:       "time",
	Object:     "object",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Valid reports whether k names a real kind.
func (k Kind) Valid() bool { return k > Invalid && k <= Object }

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool { return k >= Int8 && k <= Int64 }

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool { return k >= Uint8 && k <= Uint64 }

// IsInteger reports whether k is any integer kind.
func (k Kind) IsInteger() bool { return k.IsSigned() || k.IsUnsigned() }

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool { return k >= Float16 && k <= Float64 }

// IsComplex reports whether k is a complex kind.
func (k Kind) IsComplex() bool { return k == Complex64 || k == Complex128 }

// IsNumeric reports whether k is an integer, float, or complex kind.
func (k Kind) IsNumeric() bool { return k.IsInteger() || k.IsFloat() || k.IsComplex() }

// Bits returns the storage width of fixed-width kinds, 0 otherwise.
func (k Kind) Bits() int {
	switch k {
	case Bool, Int8, Uint8:
		return 8
	case Int16, Uint16, Float16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64, Complex64:
		return 64
	case Complex128:
		return 128
	}
	return 0
}

// Bounds returns the inclusive integer value range of integer kinds as
// float64 values, the domain a JSON Schema number lives in. The true 64-bit
// maxima are not float64-representable; they saturate at the nearest
// representable value below, so the bounds never admit an out-of-range
// integer.
func (k Kind) Bounds() (min, max float64, ok bool) {
	switch k {
	case Int8:
		return -1 << 7, 1<<7 - 1, true
	case Int16:
		return -1 << 15, 1<<15 - 1, true
	case Int32:
		return -1 << 31, 1<<31 - 1, true
	case Int64:
		return -1 << 63, 1<<63 - 1024, true
	case Uint8:
		return 0, 1<<8 - 1, true
	case Uint16:
		return 0, 1<<16 - 1, true
	case Uint32:
		return 0, 1<<32 - 1, true
	case Uint64:
		return 0, 1<<64 - 2048, true
	}
	return 0, 0, false
}

// Family groups kinds into generic descriptors usable in specs, e.g.
// "any integer".
type Family uint8

const (
	FamilyInvalid Family = iota
	Signed
	Unsigned
	Integer
	Float
	Complex
	Number
)

var familyNames = map[Family]string{
	Signed:   "signed",
	Unsigned: "unsigned",
	Integer:  "int",
	Float:    "float",
	Complex:  "complex",
	Number:   "number",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "invalid"
}

// Contains reports whether kind k belongs to the family.
func (f Family) Contains(k Kind) bool {
	switch f {
	case Signed:
		return k.IsSigned()
	case Unsigned:
		return k.IsUnsigned()
	case Integer:
		return k.IsInteger()
	case Float:
		return k.IsFloat()
	case Complex:
		return k.IsComplex()
	case Number:
		return k.IsNumeric()
	}
	return false
}
