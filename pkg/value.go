package stride

import "strconv"

// Value is a runtime value: either a Number or a Bool. The two are never
// converted into one another.
type Value interface {
	String() string
	Type() string
	value()
}

type Number float64

func (Number) value() {}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (Number) Type() string {
	return "number"
}

type Bool bool

func (Bool) value() {}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (Bool) Type() string {
	return "boolean"
}
