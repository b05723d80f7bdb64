package dosing

import "math"

// Engine evaluates feeding plans. It holds only the immutable profile
// table; every call is a pure function of its inputs, so concurrent use
// needs no coordination.
type Engine struct {
	profiles ProfileTable
}

// NewEngine creates an Engine over a precomputed profile table. The table
// is treated as read-only; swapping recipes at runtime means building a
// new table and a new Engine.
func NewEngine(profiles ProfileTable) *Engine {
	return &Engine{profiles: profiles}
}

// Calculate derives the adjusted doses, weigh table, elemental ppm and
// N:P:K ratio for one feeding. It returns nil when the plan has no entry
// for the requested phase; callers must treat that as a normal outcome,
// not an error.
func (e *Engine) Calculate(in DoseInput, plan ManagedPlan) *CalculationResult {
	entry := plan.EntryFor(in.Phase)
	if entry == nil {
		return nil
	}

	phase := ParsePhase(in.Phase)
	stage := StageForPhase(phase)

	base, final := adjustDoses(in, entry, stage)
	delta := Doses{
		NitrogenCarrier: round2(final.NitrogenCarrier - base.NitrogenCarrier),
		StageCarrier:    round2(final.StageCarrier - base.StageCarrier),
		BloomBooster:    round2(final.BloomBooster - base.BloomBooster),
	}

	share := math.Min(1, math.Max(0, plan.OsmosisShare))
	ppm := accumulatePPM(final, entry, stage, e.profiles, plan.Water, share)

	ecNote := ""
	if delta != (Doses{}) {
		ecNote = "note.ec_adjusted"
	}

	return &CalculationResult{
		Base:       base,
		Delta:      delta,
		Adjusted:   final,
		ECDisplay:  entry.TargetEC,
		ECNoteKey:  ecNote,
		WeighTable: buildWeighTable(entry, final, phase, stage, in.ReservoirLiters, e.isFinalRipenWeek(plan, entry)),
		PPM:        ppm,
		NPKRatio:   npkRatio(ppm),
		Stage:      stage,
	}
}

// isFinalRipenWeek reports whether the entry is the last defined week of
// the plan and that week classifies as ripening; only then is the fixed
// flush dose added to the weigh table.
func (e *Engine) isFinalRipenWeek(plan ManagedPlan, entry *PlanEntry) bool {
	if len(plan.Entries) == 0 {
		return false
	}
	last := &plan.Entries[len(plan.Entries)-1]
	if last.Phase != entry.Phase {
		return false
	}
	return StageForPhase(ParsePhase(entry.Phase)) == StageRipening
}
