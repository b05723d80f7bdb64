package dosing

// ReferenceMass is the total mass, in grams, a raw concentrate recipe is
// renormalized to before conversion.
const ReferenceMass = 1000.0

// IonPart describes one elemental contribution of a fertilizer salt:
// the mass fraction of the declared active compound and, where that
// compound is expressed as an oxide, the stoichiometric oxide-to-element
// factor (1 when the fraction is already elemental).
type IonPart struct {
	Element  Element
	Fraction float64
	Factor   float64
}

// Salt is a named mineral salt with its ion contributions.
type Salt struct {
	Name  string
	Parts []IonPart
}

// CompileRecipe converts a raw salt recipe (grams per salt, to be made up
// to ReferenceMass of finished concentrate) into the elemental profile of
// that concentrate, in ppm per gram-per-liter.
//
// Every raw amount is first multiplied by scale, then the whole recipe is
// renormalized so the total equals ReferenceMass exactly; this corrects
// rounding drift in hand-tuned recipes while preserving the salt ratios.
// Salts not present in the composition table, and zero amounts, contribute
// nothing. An all-zero recipe yields an all-zero profile.
func CompileRecipe(recipe map[string]float64, scale float64, salts map[string]Salt) ElementalProfile {
	profile := NewProfile()

	total := 0.0
	for _, grams := range recipe {
		total += grams * scale
	}
	if total <= 0 {
		return profile
	}

	for name, grams := range recipe {
		salt, ok := salts[name]
		if !ok || grams <= 0 {
			continue
		}
		normalized := grams * scale * ReferenceMass / total
		for _, part := range salt.Parts {
			// normalized grams of salt per ReferenceMass grams of
			// concentrate equals mg of salt per liter at a 1 g/L dose,
			// so the elemental ppm is a direct product.
			profile[part.Element] += normalized * part.Fraction * part.Factor
		}
	}

	return profile
}
