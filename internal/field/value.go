package field

import "strconv"

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindComposite:
		return "composite"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Unknown is the display form of the missing sentinel.
const Unknown = "unknown"

// Value is a resolved field value. The zero Value is Missing.
//
// Text and Number are scalars. Composite carries the canonical compact JSON
// of an object or array, which is what search and ordering work on.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Missing is returned whenever a path cannot be resolved or ends at null.
var Missing = Value{}

func TextValue(s string) Value { return Value{kind: KindText, text: s} }

func NumberValue(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'f', -1, 64), num: f}
}

// numberLiteral keeps the literal spelling from the source document.
func numberLiteral(lit string, f float64) Value {
	return Value{kind: KindNumber, text: lit, num: f}
}

// CompositeValue wraps canonical JSON text for a structured value.
func CompositeValue(canonical string) Value {
	return Value{kind: KindComposite, text: canonical}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Text is the canonical string form: the string itself, the number literal,
// the serialized composite, or Unknown for Missing.
func (v Value) Text() string {
	if v.kind == KindMissing {
		return Unknown
	}
	return v.text
}

// Number returns the numeric payload of a KindNumber value.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) String() string { return v.Text() }
