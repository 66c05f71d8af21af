package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iksnae/hiitbeep/internal"
)

// intervalSpecError reports a malformed --interval value
type intervalSpecError struct {
	Value string
}

func (e *intervalSpecError) Error() string {
	return fmt.Sprintf("invalid interval %q: use name:seconds[:color[:type[:sets[:rest]]]]", e.Value)
}

// MessageKey returns the translation key for this error
func (e *intervalSpecError) MessageKey() string {
	return "routine.invalidInterval"
}

// MessageParams returns the translation parameters for this error
func (e *intervalSpecError) MessageParams() map[string]any {
	return map[string]any{"value": e.Value}
}

// repetitionsError reports a repetition count below one
type repetitionsError struct{}

func (e *repetitionsError) Error() string { return "repetitions must be at least 1" }

// MessageKey returns the translation key for this error
func (e *repetitionsError) MessageKey() string { return "routine.invalidRepetitions" }

// MessageParams returns the translation parameters for this error
func (e *repetitionsError) MessageParams() map[string]any { return nil }

var defaultColors = []string{"red", "green", "blue", "yellow", "purple", "orange"}

// parseIntervals parses name:seconds[:color[:type[:sets[:rest]]]] values.
// A missing color cycles through defaultColors.
func parseIntervals(specs []string) ([]internal.Interval, error) {
	out := make([]internal.Interval, 0, len(specs))
	for i, spec := range specs {
		iv, err := parseInterval(spec, defaultColors[i%len(defaultColors)])
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

func parseInterval(spec, color string) (internal.Interval, error) {
	bad := &intervalSpecError{Value: spec}
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 6 {
		return internal.Interval{}, bad
	}

	name := strings.TrimSpace(parts[0])
	duration, err := strconv.Atoi(parts[1])
	if name == "" || err != nil || duration <= 0 {
		return internal.Interval{}, bad
	}

	iv := internal.Interval{Name: name, Duration: duration, Color: color}
	if len(parts) > 2 && parts[2] != "" {
		iv.Color = parts[2]
	}
	if len(parts) > 3 && parts[3] != "" {
		iv.Type = internal.IntervalType(parts[3])
		if !iv.Type.Valid() {
			return internal.Interval{}, bad
		}
	}
	if len(parts) > 4 && parts[4] != "" {
		sets, err := strconv.Atoi(parts[4])
		if err != nil || sets < 1 {
			return internal.Interval{}, bad
		}
		iv.Sets = &sets
	}
	if len(parts) > 5 && parts[5] != "" {
		rest, err := strconv.Atoi(parts[5])
		if err != nil || rest < 0 {
			return internal.Interval{}, bad
		}
		iv.RestTime = &rest
	}
	return iv, nil
}
