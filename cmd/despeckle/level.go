package main

import (
	"fmt"
	"strconv"
	"strings"

	"despeckle/internal/despeckle"
)

// parseLevel accepts one of the three preset names or a bare float string
// for a ContinuousLevel, matching the overload-on-level shape spec.md §6
// describes for the UI slider case.
func parseLevel(s string) (despeckle.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cautious":
		return despeckle.Cautious, nil
	case "normal", "":
		return despeckle.Normal, nil
	case "aggressive":
		return despeckle.Aggressive, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid level %q: must be cautious/normal/aggressive or a number", s)
	}
	return despeckle.ContinuousLevel(v), nil
}
