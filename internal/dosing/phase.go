package dosing

import (
	"strconv"
	"strings"
)

// PhaseKind tags the parsed phase variant.
type PhaseKind int

const (
	// Vegetative covers the pre-flowering phases of the plan.
	Vegetative PhaseKind = iota
	// FloweringWeek is a numbered flowering/ripening week.
	FloweringWeek
)

// Phase is the parsed form of a phase label. Parsing happens once at the
// system boundary; everything downstream operates on the variant.
type Phase struct {
	Kind  PhaseKind
	Week  int // valid only for FloweringWeek
	Label string
}

// vegetativeLabels are the known pre-flowering phase labels, in both
// supported display languages.
var vegetativeLabels = map[string]bool{
	"seedling":   true,
	"vegetation": true,
	"pre-flower": true,
	"saemling":   true,
	"wachstum":   true,
	"vorbluete":  true,
}

// ParsePhase parses a phase label into its tagged variant. Labels are
// matched case-insensitively; flowering weeks are written "week N" or
// "woche N". A label that is neither a known vegetative tag nor a parseable
// week falls back to Vegetative: an unknown phase means insufficient
// information, and the earliest stage is assumed rather than failing.
func ParsePhase(label string) Phase {
	norm := strings.ToLower(strings.TrimSpace(label))
	if vegetativeLabels[norm] {
		return Phase{Kind: Vegetative, Label: label}
	}

	for _, prefix := range []string{"week ", "woche "} {
		if rest, ok := strings.CutPrefix(norm, prefix); ok {
			if week, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && week > 0 {
				return Phase{Kind: FloweringWeek, Week: week, Label: label}
			}
		}
	}

	// Explicit fallback branch: unparseable label, assume vegetative.
	return Phase{Kind: Vegetative, Label: label}
}

// StageClass is the coarse feeding stage used to gate adjustment rules.
type StageClass string

const (
	StageVeg      StageClass = "VEG"
	StageWeek1    StageClass = "WEEK1"
	StageWeeks23  StageClass = "WEEKS2_3"
	StageWeeks48  StageClass = "WEEKS4_8"
	StageWeek8Lt  StageClass = "WEEK8_LATE"
	StageRipening StageClass = "RIPEN"
)

// StageForPhase maps a parsed phase to its stage class.
func StageForPhase(p Phase) StageClass {
	if p.Kind == Vegetative {
		return StageVeg
	}
	switch {
	case p.Week <= 1:
		return StageWeek1
	case p.Week <= 3:
		return StageWeeks23
	case p.Week <= 8:
		return StageWeeks48
	case p.Week == 9:
		return StageWeek8Lt
	default:
		return StageRipening
	}
}
