package ndarr

import "fmt"

// DType identifies the element kind of an array buffer by a
// single-character tag. The tag set is closed; element size in bytes
// derives from the tag.
type DType byte

// Supported element kinds.
const (
	Bool    DType = '?'
	Int8    DType = 'b'
	Uint8   DType = 'B'
	Int32   DType = 'i'
	Uint32  DType = 'I'
	Int64   DType = 'l'
	Uint64  DType = 'L'
	Float64 DType = 'f'
)

// DefaultDType is the dtype used when a caller does not ask for one.
const DefaultDType = Float64

// Size returns the element size in bytes.
func (dt DType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int32, Uint32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		panic(fmt.Sprintf("unknown dtype %q", byte(dt)))
	}
}

// String returns a human-readable name for the dtype.
func (dt DType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("unknown(%q)", byte(dt))
	}
}

func (dt DType) valid() bool {
	switch dt {
	case Bool, Int8, Uint8, Int32, Uint32, Int64, Uint64, Float64:
		return true
	}
	return false
}

func (dt DType) isFloat() bool { return dt == Float64 }

func (dt DType) isSigned() bool {
	return dt == Int8 || dt == Int32 || dt == Int64
}

func (dt DType) isInteger() bool {
	switch dt {
	case Int8, Uint8, Int32, Uint32, Int64, Uint64:
		return true
	}
	return false
}

// promotionRank defines the total promotion order across the dtype
// set. A mixed binary operation yields the higher-ranked dtype.
var promotionRank = map[DType]int{
	Bool:    0,
	Int8:    1,
	Uint8:   2,
	Int32:   3,
	Uint32:  4,
	Int64:   5,
	Uint64:  6,
	Float64: 7,
}

// promote resolves the result dtype of a binary operation on a and b.
func promote(a, b DType) DType {
	if promotionRank[a] >= promotionRank[b] {
		return a
	}
	return b
}
