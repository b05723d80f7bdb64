package fertilizer

import "growdash/internal/dosing"

// Stock concentrate recipes, in grams of salt per 1000 g of finished
// concentrate. The hand-tuned totals drift a few grams around the
// reference mass; the compiler renormalizes them.
var (
	nitrogenCarrierRecipe = map[string]float64{
		"calcium nitrate":   820,
		"magnesium nitrate": 180,
	}

	vegCarrierRecipe = map[string]float64{
		"potassium nitrate":              350,
		"monoammonium phosphate":         150,
		"magnesium sulfate heptahydrate": 250,
		"potassium sulfate":              150,
		"iron chelate":                   60,
		"manganese sulfate":              15,
		"boric acid":                     8,
		"zinc sulfate":                   8,
		"copper sulfate":                 3,
		"sodium molybdate":               1,
	}

	bloomCarrierRecipe = map[string]float64{
		"monopotassium phosphate":        300,
		"magnesium sulfate heptahydrate": 300,
		"potassium sulfate":              200,
		"potassium nitrate":              140,
		"iron chelate":                   40,
		"manganese sulfate":              10,
		"boric acid":                     6,
		"zinc sulfate":                   6,
		"copper sulfate":                 2,
		"sodium molybdate":               1,
	}

	bloomBoosterRecipe = map[string]float64{
		"monopotassium phosphate": 600,
		"potassium sulfate":       400,
	}
)

// Additive profiles are taken from the product labels rather than compiled
// from salts; amounts are ppm per ml-per-liter.
var (
	calMagProfile = dosing.ElementalProfile{
		dosing.N:  10,
		dosing.Ca: 60,
		dosing.Mg: 18,
		dosing.Fe: 0.4,
	}
	enzymeProfile    = dosing.ElementalProfile{}
	rootBoostProfile = dosing.ElementalProfile{
		dosing.K: 5,
	}
)

// DefaultTapWater is the fallback water profile used when a plan does not
// carry a measured one. Values are typical moderately hard tap water.
var DefaultTapWater = dosing.ElementalProfile{
	dosing.N:  2,
	dosing.K:  2,
	dosing.Ca: 55,
	dosing.Mg: 12,
	dosing.S:  30,
	dosing.Na: 15,
	dosing.Cl: 25,
	dosing.Fe: 0.05,
	dosing.B:  0.02,
}

// Profiles compiles the stock recipes into the immutable profile table the
// engine is constructed with. Called once at startup.
func Profiles() dosing.ProfileTable {
	return dosing.ProfileTable{
		dosing.CompNitrogenCarrier: dosing.CompileRecipe(nitrogenCarrierRecipe, 1, Salts),
		dosing.CompVegCarrier:      dosing.CompileRecipe(vegCarrierRecipe, 1, Salts),
		dosing.CompBloomCarrier:    dosing.CompileRecipe(bloomCarrierRecipe, 1, Salts),
		dosing.CompBloomBooster:    dosing.CompileRecipe(bloomBoosterRecipe, 1, Salts),
		dosing.CompCalMag:          calMagProfile.Clone(),
		dosing.CompEnzyme:          enzymeProfile.Clone(),
		dosing.CompRootBoost:       rootBoostProfile.Clone(),
		dosing.CompFlushAgent:      dosing.NewProfile(),
	}
}
