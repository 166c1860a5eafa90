package model

import "fmt"

// CalcType is the category of computation requested of an engine.
type CalcType int

const (
	Energy CalcType = iota
	Gradient
	Hessian
	Optimization
	TransitionState
	numCalcTypes
)

var calcTypeNames = [...]string{
	Energy:          "energy",
	Gradient:        "gradient",
	Hessian:         "hessian",
	Optimization:    "optimization",
	TransitionState: "transition_state",
}

func (c CalcType) String() string {
	if c < 0 || c >= numCalcTypes {
		return fmt.Sprintf("CalcType(%d)", int(c))
	}
	return calcTypeNames[c]
}

// Valid reports whether c is one of the declared calculation types.
func (c CalcType) Valid() bool {
	return c >= 0 && c < numCalcTypes
}

// ParseCalcType maps the canonical lower-case name back to a CalcType.
func ParseCalcType(s string) (CalcType, error) {
	for i, name := range calcTypeNames {
		if name == s {
			return CalcType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown calculation type %q", s)
}

// AllCalcTypes returns every calculation type in declaration order.
func AllCalcTypes() []CalcType {
	out := make([]CalcType, 0, numCalcTypes)
	for c := Energy; c < numCalcTypes; c++ {
		out = append(out, c)
	}
	return out
}

// MarshalText encodes the canonical name, so decoded results serialize readably.
func (c CalcType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid calculation type %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (c *CalcType) UnmarshalText(b []byte) error {
	v, err := ParseCalcType(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
