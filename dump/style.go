package dump

import (
	"fmt"
	"strings"
)

// Style selects wording of generated keys and flag labels.
type Style int

const (
	// StyleDescriptive is the default wording.
	StyleDescriptive Style = iota
	// StyleLegacy reproduces keys and labels of the in-game console command.
	StyleLegacy
)

var styleNames = map[Style]string{
	StyleDescriptive: "descriptive",
	StyleLegacy:      "legacy",
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle converts style name. Empty name means default style.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StyleDescriptive, nil
	}
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return StyleDescriptive, fmt.Errorf("unknown dump style %q", name)
}

var unknownLabels = [5]string{"Unknown 3", "Unknown 4", "Unknown 5", "Unknown 6", "Unknown 7"}

func labelsFor(s Style) (labels [8]string) {
	switch s {
	case StyleLegacy:
		labels[0] = "Calculate from all levels <= player's level"
		labels[1] = "Calculate for each item in count"
		labels[2] = "Use All"
	default:
		labels[0] = "calculate from all levels ≤ the actor's level"
		labels[1] = "calculate per unit of count"
		labels[2] = "use all entries"
	}
	copy(labels[3:], unknownLabels[:])
	return labels
}

func maxCountKeyFor(s Style) string {
	if s == StyleLegacy {
		return "MaxCount"
	}
	return "MaxUseAllCount"
}
