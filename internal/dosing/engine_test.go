package dosing

import (
	"reflect"
	"testing"
)

func testPlan() ManagedPlan {
	return ManagedPlan{
		Entries: []PlanEntry{
			{Phase: "vegetation", NitrogenCarrier: 0.9, StageCarrier: 0.6, BloomBooster: 0.15, TargetEC: "1.2-1.4"},
			{Phase: "week 1", NitrogenCarrier: 0.8, StageCarrier: 0.8, BloomBooster: 0, TargetEC: "1.4-1.6"},
			{Phase: "week 5", NitrogenCarrier: 0.6, StageCarrier: 1.0, BloomBooster: 0.3, TargetEC: "1.8-2.0"},
			{Phase: "week 10", NitrogenCarrier: 0, StageCarrier: 0.4, BloomBooster: 0, TargetEC: "0.8-1.0"},
		},
		Water:        ElementalProfile{Ca: 55, Mg: 12},
		OsmosisShare: 0.5,
	}
}

func TestEngineCalculate(t *testing.T) {
	engine := NewEngine(syntheticProfiles())

	t.Run("PhaseNotFound", func(t *testing.T) {
		res := engine.Calculate(DoseInput{Phase: "week 99", ECTrend: ECNeutral}, testPlan())
		if res != nil {
			t.Errorf("expected nil result for unknown phase, got %+v", res)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		in := DoseInput{
			Phase:           "week 5",
			ReservoirLiters: 60,
			ECTrend:         ECFalling,
			CaMgDeficiency:  true,
			PHDrift:         PHHigh,
		}
		first := engine.Calculate(in, testPlan())
		second := engine.Calculate(in, testPlan())
		if !reflect.DeepEqual(first, second) {
			t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
		}
	})

	t.Run("WorkedExamplePale", func(t *testing.T) {
		res := engine.Calculate(DoseInput{Phase: "vegetation", Pale: true, ECTrend: ECNeutral}, testPlan())
		if res == nil {
			t.Fatal("expected a result")
		}
		if res.Adjusted.NitrogenCarrier != 1.0 {
			t.Errorf("adjusted nitrogen = %v, want 1.0", res.Adjusted.NitrogenCarrier)
		}
		if res.Delta.NitrogenCarrier != 0.1 {
			t.Errorf("nitrogen delta = %v, want 0.1", res.Delta.NitrogenCarrier)
		}
		if res.Stage != StageVeg {
			t.Errorf("stage = %s, want VEG", res.Stage)
		}
	})

	t.Run("DeltaReflectsClamping", func(t *testing.T) {
		plan := testPlan()
		res := engine.Calculate(DoseInput{Phase: "week 10", Claw: true, ECTrend: ECNeutral}, plan)
		if res == nil {
			t.Fatal("expected a result")
		}
		// Base nitrogen is 0; the claw cut clamps back to 0, so the
		// reported delta must be 0, not -0.10.
		if res.Adjusted.NitrogenCarrier != 0 || res.Delta.NitrogenCarrier != 0 {
			t.Errorf("adjusted=%v delta=%v, want 0 and 0", res.Adjusted.NitrogenCarrier, res.Delta.NitrogenCarrier)
		}
	})

	t.Run("ClampInvariantUnderHostileInput", func(t *testing.T) {
		in := DoseInput{
			Phase:   "week 10",
			Claw:    true,
			TipBurn: true,
			ECTrend: ECRising,
			PHDrift: PHHigh,
		}
		res := engine.Calculate(in, testPlan())
		if res == nil {
			t.Fatal("expected a result")
		}
		for _, v := range []float64{res.Adjusted.NitrogenCarrier, res.Adjusted.StageCarrier, res.Adjusted.BloomBooster} {
			if v < 0 {
				t.Errorf("negative final amount: %+v", res.Adjusted)
			}
		}
	})

	t.Run("OsmosisShareClamped", func(t *testing.T) {
		plan := testPlan()
		plan.OsmosisShare = 3.7
		res := engine.Calculate(DoseInput{Phase: "week 10", ECTrend: ECNeutral}, plan)
		if res == nil {
			t.Fatal("expected a result")
		}
		// Share above 1 means pure osmosis water: no water ppm at all.
		if res.PPM[Ca] != 0 || res.PPM[Mg] != 0 {
			t.Errorf("water contributed despite clamped share: Ca=%v Mg=%v", res.PPM[Ca], res.PPM[Mg])
		}
	})

	t.Run("FlushOnlyInLastRipenWeek", func(t *testing.T) {
		res := engine.Calculate(DoseInput{Phase: "week 10", ECTrend: ECNeutral}, testPlan())
		if res == nil {
			t.Fatal("expected a result")
		}
		found := false
		for _, row := range res.WeighTable {
			if row.NameKey == "component.flush_agent" {
				found = true
			}
		}
		if !found {
			t.Error("expected flush row for the plan's final ripening week")
		}

		res = engine.Calculate(DoseInput{Phase: "week 5", ECTrend: ECNeutral}, testPlan())
		for _, row := range res.WeighTable {
			if row.NameKey == "component.flush_agent" {
				t.Error("flush row emitted mid-plan")
			}
		}
	})

	t.Run("ECNoteOnlyWhenAdjusted", func(t *testing.T) {
		res := engine.Calculate(DoseInput{Phase: "week 5", ECTrend: ECNeutral}, testPlan())
		if res.ECNoteKey != "" {
			t.Errorf("unexpected EC note on unadjusted result: %q", res.ECNoteKey)
		}
		if res.ECDisplay != "1.8-2.0" {
			t.Errorf("EC display = %q, want plan target", res.ECDisplay)
		}

		res = engine.Calculate(DoseInput{Phase: "week 5", Pale: true, ECTrend: ECNeutral}, testPlan())
		if res.ECNoteKey != "note.ec_adjusted" {
			t.Errorf("expected ec_adjusted note, got %q", res.ECNoteKey)
		}
	})
}
