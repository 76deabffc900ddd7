package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-chronicles/internal/errors"
)

// Stat names an attribute an item effect can change
type Stat string

// Stats items may modify
const (
	StatHealth    Stat = "health"
	StatMaxHealth Stat = "max_health"
	StatStrength  Stat = "strength"
	StatMagic     Stat = "magic"
)

// IsValid reports whether the stat is known
func (s Stat) IsValid() bool {
	switch s {
	case StatHealth, StatMaxHealth, StatStrength, StatMagic:
		return true
	default:
		return false
	}
}

// StatDelta is a signed change to a single stat
type StatDelta struct {
	Stat  Stat `json:"stat"`
	Value int  `json:"value"`
}

// Inverse returns the delta that undoes d
func (d StatDelta) Inverse() StatDelta {
	return StatDelta{Stat: d.Stat, Value: -d.Value}
}

// String renders the delta in catalogue form, e.g. "strength:5"
func (d StatDelta) String() string {
	return fmt.Sprintf("%s:%d", d.Stat, d.Value)
}

// ParseStatDelta parses the catalogue "stat:value" form
func ParseStatDelta(s string) (StatDelta, error) {
	name, value, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return StatDelta{}, errors.InvalidArgumentf("effect %q must be stat:value", s)
	}

	stat := Stat(strings.ToLower(strings.TrimSpace(name)))
	if !stat.IsValid() {
		return StatDelta{}, errors.InvalidArgumentf("unknown stat %q", name)
	}

	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return StatDelta{}, errors.InvalidArgumentf("effect value %q is not an integer", value)
	}

	return StatDelta{Stat: stat, Value: v}, nil
}
