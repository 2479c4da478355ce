package core

import (
	"fmt"

	"github.com/spf13/cast"
)

// Arg is one auxiliary key/value pair of a record. Values are
// stringified when the Arg is built, so formatting is purely textual.
type Arg struct {
	Key   string
	Value string
}

// NewArg stringifies val into an Arg. Values cast cannot convert fall
// back to their fmt representation.
func NewArg(key string, val interface{}) Arg {
	s, err := cast.ToStringE(val)
	if err != nil {
		s = fmt.Sprintf("%v", val)
	}
	return Arg{Key: key, Value: s}
}

// Args converts an ordered list of key/value pairs into Args. A trailing
// key without a value is kept with an empty value.
func Args(kv ...string) []Arg {
	out := make([]Arg, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		a := Arg{Key: kv[i]}
		if i+1 < len(kv) {
			a.Value = kv[i+1]
		}
		out = append(out, a)
	}
	return out
}
