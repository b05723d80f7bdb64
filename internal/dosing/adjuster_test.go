package dosing

import "testing"

func baseEntry(phase string) *PlanEntry {
	return &PlanEntry{
		Phase:           phase,
		NitrogenCarrier: 0.9,
		StageCarrier:    0.6,
		BloomBooster:    0.15,
		TargetEC:        "1.4-1.6",
	}
}

func adjustFor(t *testing.T, in DoseInput, entry *PlanEntry) (Doses, Doses) {
	t.Helper()
	stage := StageForPhase(ParsePhase(entry.Phase))
	return adjustDoses(in, entry, stage)
}

func TestAdjustDoses(t *testing.T) {
	t.Run("PaleBoostsNitrogen", func(t *testing.T) {
		entry := baseEntry("vegetation")
		_, final := adjustFor(t, DoseInput{Pale: true, ECTrend: ECNeutral}, entry)
		if final.NitrogenCarrier != 1.0 {
			t.Errorf("nitrogen carrier = %v, want 1.0", final.NitrogenCarrier)
		}
		if final.StageCarrier != 0.6 || final.BloomBooster != 0.15 {
			t.Errorf("carrier/booster changed: %+v", final)
		}
	})

	t.Run("PaleSuppressedWhenECRising", func(t *testing.T) {
		entry := baseEntry("vegetation")
		_, final := adjustFor(t, DoseInput{Pale: true, ECTrend: ECRising}, entry)
		if final.NitrogenCarrier != 0.9 {
			t.Errorf("nitrogen carrier = %v, want base 0.9", final.NitrogenCarrier)
		}
	})

	t.Run("PaleSuppressedInRipening", func(t *testing.T) {
		entry := baseEntry("week 10")
		_, final := adjustFor(t, DoseInput{Pale: true, ECTrend: ECNeutral}, entry)
		if final.NitrogenCarrier != 0.9 {
			t.Errorf("nitrogen carrier = %v, want base 0.9", final.NitrogenCarrier)
		}
	})

	t.Run("CaMgWithHighPHDriftCancelOnNitrogen", func(t *testing.T) {
		entry := baseEntry("vegetation")
		_, final := adjustFor(t, DoseInput{CaMgDeficiency: true, ECTrend: ECNeutral, PHDrift: PHHigh}, entry)
		if final.NitrogenCarrier != 0.9 {
			t.Errorf("nitrogen carrier = %v, want unchanged 0.9", final.NitrogenCarrier)
		}
		// Ca/Mg boost (+0.05) plus high-pH carrier step (+0.03).
		if final.StageCarrier != 0.68 {
			t.Errorf("stage carrier = %v, want 0.68", final.StageCarrier)
		}
		if final.BloomBooster != 0.18 {
			t.Errorf("bloom booster = %v, want 0.18", final.BloomBooster)
		}
	})

	t.Run("CaMgNitrogenBoostSkippedWithClaw", func(t *testing.T) {
		entry := baseEntry("week 5")
		_, final := adjustFor(t, DoseInput{CaMgDeficiency: true, Claw: true, ECTrend: ECNeutral}, entry)
		// Claw cut only, no compounding Ca/Mg nitrogen boost.
		if final.NitrogenCarrier != 0.8 {
			t.Errorf("nitrogen carrier = %v, want 0.8", final.NitrogenCarrier)
		}
		if final.StageCarrier != 0.65 {
			t.Errorf("stage carrier = %v, want 0.65", final.StageCarrier)
		}
	})

	t.Run("ClawCutsVegCarrierOnlyInVeg", func(t *testing.T) {
		veg := baseEntry("vegetation")
		_, vegFinal := adjustFor(t, DoseInput{Claw: true, ECTrend: ECNeutral}, veg)
		if vegFinal.NitrogenCarrier != 0.8 || vegFinal.StageCarrier != 0.55 {
			t.Errorf("veg claw adjustment = %+v", vegFinal)
		}

		bloom := baseEntry("week 5")
		_, bloomFinal := adjustFor(t, DoseInput{Claw: true, ECTrend: ECNeutral}, bloom)
		if bloomFinal.NitrogenCarrier != 0.8 || bloomFinal.StageCarrier != 0.6 {
			t.Errorf("bloom claw adjustment = %+v", bloomFinal)
		}
	})

	t.Run("TipBurnScaledByRisingEC", func(t *testing.T) {
		entry := baseEntry("week 5")
		_, final := adjustFor(t, DoseInput{TipBurn: true, ECTrend: ECRising}, entry)
		if final.NitrogenCarrier != 0.75 {
			t.Errorf("nitrogen carrier = %v, want 0.75", final.NitrogenCarrier)
		}
		if final.StageCarrier != 0.53 {
			t.Errorf("stage carrier = %v, want 0.53", final.StageCarrier)
		}
		if final.BloomBooster != 0.08 {
			t.Errorf("bloom booster = %v, want 0.08", final.BloomBooster)
		}
	})

	t.Run("TipBurnUnscaledWithoutRisingEC", func(t *testing.T) {
		entry := baseEntry("week 5")
		_, final := adjustFor(t, DoseInput{TipBurn: true, ECTrend: ECNeutral}, entry)
		if final.NitrogenCarrier != 0.8 || final.StageCarrier != 0.55 || final.BloomBooster != 0.1 {
			t.Errorf("unscaled tip burn = %+v", final)
		}
	})

	t.Run("FallingECPushMidBloom", func(t *testing.T) {
		entry := baseEntry("week 5")
		_, final := adjustFor(t, DoseInput{ECTrend: ECFalling}, entry)
		if final.StageCarrier != 0.65 {
			t.Errorf("stage carrier = %v, want 0.65", final.StageCarrier)
		}
		if final.BloomBooster != 0.2 {
			t.Errorf("bloom booster = %v, want 0.2", final.BloomBooster)
		}
	})

	t.Run("FallingECPushGatedByStage", func(t *testing.T) {
		// Weeks 2-3: booster push only, no carrier push.
		entry := baseEntry("week 2")
		_, final := adjustFor(t, DoseInput{ECTrend: ECFalling}, entry)
		if final.StageCarrier != 0.6 {
			t.Errorf("stage carrier = %v, want 0.6", final.StageCarrier)
		}
		if final.BloomBooster != 0.2 {
			t.Errorf("bloom booster = %v, want 0.2", final.BloomBooster)
		}

		// Week 1: neither.
		entry = baseEntry("week 1")
		_, final = adjustFor(t, DoseInput{ECTrend: ECFalling}, entry)
		if final.StageCarrier != 0.6 || final.BloomBooster != 0.15 {
			t.Errorf("week 1 push = %+v", final)
		}
	})

	t.Run("LowPHDriftMirrorsHigh", func(t *testing.T) {
		entry := baseEntry("week 5")
		_, final := adjustFor(t, DoseInput{ECTrend: ECNeutral, PHDrift: PHLow}, entry)
		if final.NitrogenCarrier != 0.95 || final.StageCarrier != 0.57 || final.BloomBooster != 0.12 {
			t.Errorf("low pH drift = %+v", final)
		}
	})

	t.Run("HighPHDriftWithRisingECDoubleCorrectsBooster", func(t *testing.T) {
		entry := baseEntry("week 5")
		_, final := adjustFor(t, DoseInput{ECTrend: ECRising, PHDrift: PHHigh}, entry)
		// +0.03 then -0.05 on a 0.15 base.
		if final.BloomBooster != 0.13 {
			t.Errorf("bloom booster = %v, want 0.13", final.BloomBooster)
		}
	})

	t.Run("ClampsAtZero", func(t *testing.T) {
		entry := &PlanEntry{Phase: "week 5", NitrogenCarrier: 0.05, StageCarrier: 0.02}
		_, final := adjustFor(t, DoseInput{Claw: true, TipBurn: true, ECTrend: ECRising}, entry)
		if final.NitrogenCarrier != 0 || final.StageCarrier != 0 {
			t.Errorf("expected clamp to zero, got %+v", final)
		}
	})

	t.Run("ZeroBaseBoosterStaysZero", func(t *testing.T) {
		entry := &PlanEntry{Phase: "week 5", NitrogenCarrier: 0.9, StageCarrier: 0.6}
		inputs := []DoseInput{
			{ECTrend: ECFalling},
			{ECTrend: ECNeutral, PHDrift: PHHigh},
			{ECTrend: ECRising, TipBurn: true},
		}
		for _, in := range inputs {
			_, final := adjustFor(t, in, entry)
			if final.BloomBooster != 0 {
				t.Errorf("booster introduced for input %+v: %v", in, final.BloomBooster)
			}
		}
	})
}

func TestBuildWeighTable(t *testing.T) {
	findRow := func(rows []WeighRow, key string) *WeighRow {
		for i := range rows {
			if rows[i].NameKey == key {
				return &rows[i]
			}
		}
		return nil
	}

	t.Run("NitrogenCautionInRipening", func(t *testing.T) {
		entry := baseEntry("week 10")
		phase := ParsePhase(entry.Phase)
		rows := buildWeighTable(entry, Doses{NitrogenCarrier: 0.9, StageCarrier: 0.6, BloomBooster: 0.15}, phase, StageRipening, 1, false)
		row := findRow(rows, "component.nitrogen_carrier")
		if row == nil || row.NoteKey != "note.ripen_nitrogen" {
			t.Errorf("expected ripening caution on nitrogen carrier, got %+v", row)
		}
	})

	t.Run("CarrierNameFollowsStage", func(t *testing.T) {
		entry := baseEntry("vegetation")
		rows := buildWeighTable(entry, Doses{StageCarrier: 0.6}, ParsePhase(entry.Phase), StageVeg, 1, false)
		if findRow(rows, "component.veg_carrier") == nil {
			t.Error("expected veg carrier row in VEG stage")
		}

		entry = baseEntry("week 4")
		rows = buildWeighTable(entry, Doses{StageCarrier: 0.6}, ParsePhase(entry.Phase), StageWeeks48, 1, false)
		if findRow(rows, "component.bloom_carrier") == nil {
			t.Error("expected bloom carrier row in bloom stage")
		}
	})

	t.Run("BoosterRowOmittedWhenZero", func(t *testing.T) {
		entry := &PlanEntry{Phase: "week 5"}
		rows := buildWeighTable(entry, Doses{}, ParsePhase(entry.Phase), StageWeeks48, 1, false)
		if findRow(rows, "component.bloom_booster") != nil {
			t.Error("booster row present despite zero base and final amount")
		}
	})

	t.Run("BoosterAnnotatedOutsideMainBloom", func(t *testing.T) {
		entry := baseEntry("week 1")
		rows := buildWeighTable(entry, Doses{BloomBooster: 0.15}, ParsePhase(entry.Phase), StageWeek1, 1, false)
		row := findRow(rows, "component.bloom_booster")
		if row == nil || row.NoteKey != "note.booster_atypical" {
			t.Errorf("expected atypical note on booster, got %+v", row)
		}
	})

	t.Run("EnzymePulseNoteStopsAtWeekNine", func(t *testing.T) {
		entry := baseEntry("week 5")
		entry.Additives.Enzyme = 2
		rows := buildWeighTable(entry, Doses{}, ParsePhase(entry.Phase), StageWeeks48, 1, false)
		row := findRow(rows, "component.enzyme")
		if row == nil || row.NoteKey != "note.pulse" {
			t.Errorf("expected pulse note in week 5, got %+v", row)
		}

		entry.Phase = "week 9"
		rows = buildWeighTable(entry, Doses{}, ParsePhase(entry.Phase), StageWeek8Lt, 1, false)
		row = findRow(rows, "component.enzyme")
		if row == nil || row.NoteKey != "" {
			t.Errorf("expected no pulse note from week 9, got %+v", row)
		}
	})

	t.Run("PerPlantAdditiveNotScaled", func(t *testing.T) {
		entry := baseEntry("vegetation")
		entry.Additives.RootBoost = 5
		entry.Additives.RootBoostUnit = PerPlant
		rows := buildWeighTable(entry, Doses{}, ParsePhase(entry.Phase), StageVeg, 100, false)
		row := findRow(rows, "component.root_boost")
		if row == nil || !row.PerPlant || row.Amount != 5 {
			t.Errorf("per-plant additive row = %+v", row)
		}
	})

	t.Run("ReservoirScaling", func(t *testing.T) {
		entry := baseEntry("week 5")
		entry.Additives.CalMag = 1.5
		rows := buildWeighTable(entry, Doses{NitrogenCarrier: 0.9, StageCarrier: 0.6, BloomBooster: 0.15}, ParsePhase(entry.Phase), StageWeeks48, 100, false)
		if row := findRow(rows, "component.nitrogen_carrier"); row == nil || row.Amount != 90 {
			t.Errorf("nitrogen row = %+v, want 90 g", row)
		}
		if row := findRow(rows, "component.calmag"); row == nil || row.Amount != 150 || row.Unit != "ml" {
			t.Errorf("calmag row = %+v, want 150 ml", row)
		}
	})

	t.Run("FlushRowOnlyInFinalRipenWeek", func(t *testing.T) {
		entry := baseEntry("week 10")
		phase := ParsePhase(entry.Phase)
		rows := buildWeighTable(entry, Doses{}, phase, StageRipening, 10, true)
		row := findRow(rows, "component.flush_agent")
		if row == nil || row.Category != CategoryFinishing || row.Amount != 10 {
			t.Errorf("flush row = %+v", row)
		}

		rows = buildWeighTable(entry, Doses{}, phase, StageRipening, 10, false)
		if findRow(rows, "component.flush_agent") != nil {
			t.Error("flush row emitted outside the final ripening week")
		}
	})
}
