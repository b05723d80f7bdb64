package dosing

import "math"

// Adjustment deltas in grams per liter. The Ca/Mg nitrogen boost and the
// high-pH nitrogen cut are equal on purpose: flagged together they cancel
// and the nitrogen carrier stays at its base dose.
const (
	clawNitrogenCut      = 0.10
	clawVegCarrierCut    = 0.05
	paleNitrogenBoost    = 0.10
	caMgCarrierBoost     = 0.05
	caMgNitrogenBoost    = 0.05
	tipBurnNitrogenCut   = 0.10
	tipBurnCarrierCut    = 0.05
	tipBurnBoosterCut    = 0.05
	risingECFactor       = 1.5
	fallingECCarrierPush = 0.05
	fallingECBoosterPush = 0.05
	phDriftNitrogenStep  = 0.05
	phDriftCarrierStep   = 0.03
	phDriftBoosterStep   = 0.03
	phDriftBoosterECCut  = 0.05
)

// flushDose is the fixed finishing-agent dose (ml per liter) weighed in
// the final ripening week.
const flushDose = 1.0

// pulseStopWeek is the flowering week from which the enzyme additive is
// dosed every feeding instead of pulsed.
const pulseStopWeek = 9

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// adjustDoses applies the ordered adjustment rules to the entry's base
// doses and returns base and final amounts. Final amounts are rounded to
// two decimals and clamped to zero; the bloom booster is forced to zero
// whenever the plan did not call for it.
func adjustDoses(in DoseInput, entry *PlanEntry, stage StageClass) (base, final Doses) {
	base = Doses{
		NitrogenCarrier: entry.NitrogenCarrier,
		StageCarrier:    entry.StageCarrier,
		BloomBooster:    entry.BloomBooster,
	}

	var dN, dS, dB float64

	// 1. Nitrogen management.
	if in.Claw {
		dN -= clawNitrogenCut
		if stage == StageVeg {
			// The veg carrier is itself nitrogen-rich.
			dS -= clawVegCarrierCut
		}
	}
	if in.Pale && in.ECTrend != ECRising && stage != StageRipening {
		// Senescence coloring in ripening is expected, not corrected.
		dN += paleNitrogenBoost
	}

	// 2. Calcium/magnesium.
	if in.CaMgDeficiency {
		dS += caMgCarrierBoost
		if in.ECTrend != ECRising && !in.Claw {
			dN += caMgNitrogenBoost
		}
	}

	// 3. Tip burn vs. EC trend.
	if in.TipBurn {
		factor := 1.0
		if in.ECTrend == ECRising {
			factor = risingECFactor
		}
		dN -= tipBurnNitrogenCut * factor
		dS -= tipBurnCarrierCut * factor
		if entry.BloomBooster > 0 {
			dB -= tipBurnBoosterCut * factor
		}
	} else if in.ECTrend == ECFalling && stage != StageRipening && !in.Claw {
		if stage == StageWeeks48 {
			dS += fallingECCarrierPush
		}
		if entry.BloomBooster > 0 && (stage == StageWeeks23 || stage == StageWeeks48) {
			dB += fallingECBoosterPush
		}
	}

	// 4. pH drift.
	switch in.PHDrift {
	case PHHigh:
		dN -= phDriftNitrogenStep
		dS += phDriftCarrierStep
		if entry.BloomBooster > 0 {
			dB += phDriftBoosterStep
			if in.ECTrend == ECRising {
				dB -= phDriftBoosterECCut
			}
		}
	case PHLow:
		dN += phDriftNitrogenStep
		dS -= phDriftCarrierStep
		if entry.BloomBooster > 0 {
			dB -= phDriftBoosterStep
		}
	}

	// 5. Clamp and round.
	final = Doses{
		NitrogenCarrier: math.Max(0, round2(base.NitrogenCarrier+dN)),
		StageCarrier:    math.Max(0, round2(base.StageCarrier+dS)),
		BloomBooster:    math.Max(0, round2(base.BloomBooster+dB)),
	}
	if entry.BloomBooster == 0 {
		// The booster is never introduced where the plan did not call
		// for it.
		final.BloomBooster = 0
	}
	return base, final
}

// buildWeighTable emits the ordered weigh table for one feeding. Per-liter
// amounts are scaled by the reservoir volume; a per-plant additive keeps
// its per-plant amount and sets the flag.
func buildWeighTable(entry *PlanEntry, final Doses, phase Phase, stage StageClass, liters float64, lastRipenWeek bool) []WeighRow {
	if liters <= 0 {
		liters = 1
	}

	rows := make([]WeighRow, 0, 7)

	nitrogenNote := ""
	if stage == StageRipening {
		nitrogenNote = "note.ripen_nitrogen"
	}
	rows = append(rows, WeighRow{
		NameKey:  "component." + string(CompNitrogenCarrier),
		Amount:   round2(final.NitrogenCarrier * liters),
		Unit:     "g",
		NoteKey:  nitrogenNote,
		Category: CategoryBase,
	})

	carrier := CompBloomCarrier
	if stage == StageVeg {
		carrier = CompVegCarrier
	}
	rows = append(rows, WeighRow{
		NameKey:  "component." + string(carrier),
		Amount:   round2(final.StageCarrier * liters),
		Unit:     "g",
		Category: CategoryBase,
	})

	if entry.BloomBooster > 0 || final.BloomBooster > 0 {
		boosterNote := ""
		if stage == StageVeg || stage == StageWeek1 || stage == StageRipening {
			boosterNote = "note.booster_atypical"
		}
		rows = append(rows, WeighRow{
			NameKey:  "component." + string(CompBloomBooster),
			Amount:   round2(final.BloomBooster * liters),
			Unit:     "g",
			NoteKey:  boosterNote,
			Category: CategoryBase,
		})
	}

	if entry.Additives.CalMag > 0 {
		rows = append(rows, WeighRow{
			NameKey:  "component." + string(CompCalMag),
			Amount:   round2(entry.Additives.CalMag * liters),
			Unit:     "ml",
			Category: CategoryAdditive,
		})
	}
	if entry.Additives.Enzyme > 0 {
		pulseNote := "note.pulse"
		if phase.Kind == FloweringWeek && phase.Week >= pulseStopWeek {
			pulseNote = ""
		}
		rows = append(rows, WeighRow{
			NameKey:  "component." + string(CompEnzyme),
			Amount:   round2(entry.Additives.Enzyme * liters),
			Unit:     "ml",
			NoteKey:  pulseNote,
			Category: CategoryAdditive,
		})
	}
	if entry.Additives.RootBoost > 0 {
		perPlant := entry.Additives.RootBoostUnit == PerPlant
		amount := entry.Additives.RootBoost
		if !perPlant {
			amount = round2(amount * liters)
		}
		rows = append(rows, WeighRow{
			NameKey:  "component." + string(CompRootBoost),
			Amount:   amount,
			Unit:     "ml",
			Category: CategoryAdditive,
			PerPlant: perPlant,
		})
	}

	if lastRipenWeek {
		rows = append(rows, WeighRow{
			NameKey:  "component." + string(CompFlushAgent),
			Amount:   round2(flushDose * liters),
			Unit:     "ml",
			NoteKey:  "note.flush",
			Category: CategoryFinishing,
		})
	}

	return rows
}
