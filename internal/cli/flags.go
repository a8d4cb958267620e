package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// optionalFloat is a float flag that stays nil until set, so an unset flag
// is distinguishable from an explicit zero.
type optionalFloat struct {
	target **float64
}

var _ pflag.Value = optionalFloat{}

func newOptionalFloat(target **float64) optionalFloat {
	return optionalFloat{target: target}
}

func (f optionalFloat) String() string {
	if f.target == nil || *f.target == nil {
		return ""
	}
	return strconv.FormatFloat(**f.target, 'f', -1, 64)
}

func (f optionalFloat) Set(s string) error {
	v, err := parseFloatInput(s)
	if err != nil {
		return err
	}
	*f.target = &v
	return nil
}

func (f optionalFloat) Type() string { return "float" }

func floatFlag(fs *pflag.FlagSet, target **float64, name, usage string) {
	fs.Var(newOptionalFloat(target), name, usage)
}

// parseFloatInput accepts a decimal comma as well as a decimal point.
func parseFloatInput(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// parseOptionalFloatInput maps blank input to nil.
func parseOptionalFloatInput(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseFloatInput(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
