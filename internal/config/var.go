package config

import (
	"errors"
	"math"
	"strconv"
)

// Kind tags the type of storage a Var is bound to.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

var (
	errInvalidBool    = errors.New("boolean must be true, false, 1 or 0")
	errNonFiniteFloat = errors.New("float must be finite")
)

// Var is a typed reference to caller-owned storage. The set of
// implementations is closed: IntVar, FloatVar and BoolVar.
type Var interface {
	Kind() Kind
	Set(value string) error
	String() string
	sealed()
}

// IntVar binds a config key to an int.
type IntVar struct{ P *int }

func (v IntVar) Kind() Kind { return KindInt }

func (v IntVar) Set(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*v.P = n
	return nil
}

func (v IntVar) String() string { return strconv.Itoa(*v.P) }
func (IntVar) sealed()          {}

// FloatVar binds a config key to a float64. NaN and infinities are rejected.
type FloatVar struct{ P *float64 }

func (v FloatVar) Kind() Kind { return KindFloat }

func (v FloatVar) Set(value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errNonFiniteFloat
	}
	*v.P = f
	return nil
}

func (v FloatVar) String() string { return strconv.FormatFloat(*v.P, 'g', -1, 64) }
func (FloatVar) sealed()          {}

// BoolVar binds a config key to a bool. Only "true", "1", "false" and "0"
// are accepted.
type BoolVar struct{ P *bool }

func (v BoolVar) Kind() Kind { return KindBool }

func (v BoolVar) Set(value string) error {
	switch value {
	case "true", "1":
		*v.P = true
	case "false", "0":
		*v.P = false
	default:
		return errInvalidBool
	}
	return nil
}

func (v BoolVar) String() string { return strconv.FormatBool(*v.P) }
func (BoolVar) sealed()          {}
