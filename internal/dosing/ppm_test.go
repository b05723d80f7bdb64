package dosing

import (
	"math"
	"testing"
)

func syntheticProfiles() ProfileTable {
	return ProfileTable{
		CompNitrogenCarrier: ElementalProfile{N: 100, Ca: 50},
		CompVegCarrier:      ElementalProfile{N: 60, P: 20, K: 40},
		CompBloomCarrier:    ElementalProfile{N: 20, P: 50, K: 80},
		CompBloomBooster:    ElementalProfile{P: 90, K: 110},
		CompCalMag:          ElementalProfile{Ca: 60, Mg: 18},
		CompEnzyme:          ElementalProfile{},
		CompRootBoost:       ElementalProfile{K: 5},
	}
}

func TestAccumulatePPM(t *testing.T) {
	profiles := syntheticProfiles()

	t.Run("CarrierProfileFollowsStage", func(t *testing.T) {
		entry := &PlanEntry{}
		final := Doses{StageCarrier: 1}

		veg := accumulatePPM(final, entry, StageVeg, profiles, nil, 1)
		if veg[P] != 20 {
			t.Errorf("veg carrier P = %v, want 20", veg[P])
		}

		bloom := accumulatePPM(final, entry, StageWeeks48, profiles, nil, 1)
		if bloom[P] != 50 {
			t.Errorf("bloom carrier P = %v, want 50", bloom[P])
		}
	})

	t.Run("WaterBlendConservation", func(t *testing.T) {
		entry := &PlanEntry{}
		water := ElementalProfile{Ca: 55, Mg: 12, Na: 15}

		full := accumulatePPM(Doses{}, entry, StageVeg, profiles, water, 0)
		for e, v := range water {
			if full[e] != v {
				t.Errorf("osmosis share 0: %s = %v, want %v", e, full[e], v)
			}
		}

		none := accumulatePPM(Doses{}, entry, StageVeg, profiles, water, 1)
		for _, e := range Elements {
			if none[e] != 0 {
				t.Errorf("osmosis share 1: %s = %v, want 0", e, none[e])
			}
		}

		half := accumulatePPM(Doses{}, entry, StageVeg, profiles, water, 0.5)
		if math.Abs(half[Ca]-27.5) > 1e-9 {
			t.Errorf("osmosis share 0.5: Ca = %v, want 27.5", half[Ca])
		}
	})

	t.Run("ComponentsSum", func(t *testing.T) {
		entry := &PlanEntry{Additives: Additives{CalMag: 2}}
		final := Doses{NitrogenCarrier: 0.5, StageCarrier: 1, BloomBooster: 0.2}
		total := accumulatePPM(final, entry, StageWeeks48, profiles, nil, 1)

		if want := 0.5*100 + 1*20; total[N] != want {
			t.Errorf("N = %v, want %v", total[N], want)
		}
		if want := 1*50 + 0.2*90.0; math.Abs(total[P]-want) > 1e-9 {
			t.Errorf("P = %v, want %v", total[P], want)
		}
		if want := 0.5*50 + 2*60.0; total[Ca] != want {
			t.Errorf("Ca = %v, want %v", total[Ca], want)
		}
	})

	t.Run("PerPlantAdditiveExcluded", func(t *testing.T) {
		entry := &PlanEntry{Additives: Additives{RootBoost: 5, RootBoostUnit: PerPlant}}
		total := accumulatePPM(Doses{}, entry, StageVeg, profiles, nil, 1)
		if total[K] != 0 {
			t.Errorf("per-plant additive leaked into ppm: K = %v", total[K])
		}
	})
}

func TestNPKRatio(t *testing.T) {
	cases := []struct {
		name    string
		profile ElementalProfile
		want    string
	}{
		{"AllZero", ElementalProfile{}, "0:0:0"},
		{"Balanced", ElementalProfile{N: 100, P: 50, K: 150}, "2.0:1.0:3.0"},
		{"ZeroExcludedFromDivisor", ElementalProfile{N: 120, P: 0, K: 60}, "2.0:0.0:1.0"},
		{"SingleElement", ElementalProfile{K: 80}, "0.0:0.0:1.0"},
		{"Fractional", ElementalProfile{N: 90, P: 60, K: 150}, "1.5:1.0:2.5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := npkRatio(c.profile); got != c.want {
				t.Errorf("npkRatio = %q, want %q", got, c.want)
			}
		})
	}
}
