package dosing

import "fmt"

// accumulatePPM sums the elemental contributions of every active component
// plus the tap-water fraction. The veg carrier profile is used in the VEG
// stage, the bloom carrier profile everywhere else. No clamping is applied:
// ppm totals may legitimately reflect therapeutic or toxic doses.
func accumulatePPM(final Doses, entry *PlanEntry, stage StageClass, profiles ProfileTable, water ElementalProfile, osmosisShare float64) ElementalProfile {
	total := NewProfile()

	carrier := CompBloomCarrier
	if stage == StageVeg {
		carrier = CompVegCarrier
	}

	addComponent(total, profiles[CompNitrogenCarrier], final.NitrogenCarrier)
	addComponent(total, profiles[carrier], final.StageCarrier)
	addComponent(total, profiles[CompBloomBooster], final.BloomBooster)

	addComponent(total, profiles[CompCalMag], entry.Additives.CalMag)
	addComponent(total, profiles[CompEnzyme], entry.Additives.Enzyme)
	if entry.Additives.RootBoostUnit != PerPlant {
		// A per-plant additive has no defined per-liter concentration.
		addComponent(total, profiles[CompRootBoost], entry.Additives.RootBoost)
	}

	// Water last: reverse-osmosis water contributes nothing, so only the
	// tap fraction is added.
	addComponent(total, water, 1-osmosisShare)

	return total
}

func addComponent(total, profile ElementalProfile, amount float64) {
	if amount <= 0 || profile == nil {
		return
	}
	for e, v := range profile {
		total[e] += amount * v
	}
}

// npkRatio derives the normalized N:P:K display ratio. The divisor is the
// smallest positive value among N, P and K; with no positive value the
// literal "0:0:0" is reported.
func npkRatio(p ElementalProfile) string {
	divisor := 0.0
	for _, e := range []Element{N, P, K} {
		v := p[e]
		if v <= 0 {
			continue
		}
		if divisor == 0 || v < divisor {
			divisor = v
		}
	}
	if divisor == 0 {
		return "0:0:0"
	}
	return fmt.Sprintf("%.1f:%.1f:%.1f", p[N]/divisor, p[P]/divisor, p[K]/divisor)
}
