package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*minutesValue)(nil)

// minutesValue is a pflag.Value for whole positive minutes. It accepts a
// bare number ("25") or a Go duration in whole minutes ("1h30m").
type minutesValue struct {
	minutes int
	set     bool
}

func (v *minutesValue) String() string {
	if !v.set {
		return ""
	}
	return strconv.Itoa(v.minutes)
}

func (v *minutesValue) Set(s string) error {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		d, derr := time.ParseDuration(s)
		if derr != nil || d%time.Minute != 0 {
			return fmt.Errorf("invalid minutes %q", s)
		}
		n = int(d / time.Minute)
	}
	if n <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", n)
	}
	v.minutes, v.set = n, true
	return nil
}

func (v *minutesValue) Type() string {
	return "minutes"
}
