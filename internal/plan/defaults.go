package plan

import (
	"growdash/internal/dosing"
	"growdash/internal/fertilizer"
)

// DefaultPlan is the built-in feeding plan seeded on first start. Doses
// ramp through vegetation, peak mid-bloom and taper into the flush week.
func DefaultPlan() dosing.ManagedPlan {
	return dosing.ManagedPlan{
		Entries: []dosing.PlanEntry{
			{
				Phase: "Seedling", NitrogenCarrier: 0.2, StageCarrier: 0.2,
				TargetPH: "5.8-6.2", TargetEC: "0.6-0.8", DurationDays: 14,
				Additives: dosing.Additives{RootBoost: 2, RootBoostUnit: dosing.PerPlant},
			},
			{
				Phase: "Vegetation", NitrogenCarrier: 0.9, StageCarrier: 0.6, BloomBooster: 0.15,
				TargetPH: "5.8-6.2", TargetEC: "1.2-1.4", DurationDays: 21,
				Additives: dosing.Additives{CalMag: 1},
			},
			{
				Phase: "Pre-Flower", NitrogenCarrier: 0.9, StageCarrier: 0.8,
				TargetPH: "5.9-6.3", TargetEC: "1.4-1.6", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1},
			},
			{
				Phase: "week 1", NitrogenCarrier: 0.8, StageCarrier: 0.9,
				TargetPH: "6.0", TargetEC: "1.5-1.7", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1, Enzyme: 2},
			},
			{
				Phase: "week 2", NitrogenCarrier: 0.7, StageCarrier: 1.0, BloomBooster: 0.1,
				TargetPH: "6.0", TargetEC: "1.6-1.8", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1, Enzyme: 2},
			},
			{
				Phase: "week 3", NitrogenCarrier: 0.7, StageCarrier: 1.0, BloomBooster: 0.2,
				TargetPH: "6.0", TargetEC: "1.7-1.9", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1, Enzyme: 2},
			},
			{
				Phase: "week 4", NitrogenCarrier: 0.6, StageCarrier: 1.1, BloomBooster: 0.3,
				TargetPH: "6.1", TargetEC: "1.8-2.0", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1.5, Enzyme: 2},
			},
			{
				Phase: "week 5", NitrogenCarrier: 0.6, StageCarrier: 1.1, BloomBooster: 0.4,
				TargetPH: "6.1", TargetEC: "1.9-2.1", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1.5, Enzyme: 2},
			},
			{
				Phase: "week 6", NitrogenCarrier: 0.5, StageCarrier: 1.1, BloomBooster: 0.4,
				TargetPH: "6.1", TargetEC: "1.9-2.1", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1.5, Enzyme: 2},
			},
			{
				Phase: "week 7", NitrogenCarrier: 0.4, StageCarrier: 1.0, BloomBooster: 0.3,
				TargetPH: "6.2", TargetEC: "1.8-2.0", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1, Enzyme: 2},
			},
			{
				Phase: "week 8", NitrogenCarrier: 0.3, StageCarrier: 0.9, BloomBooster: 0.2,
				TargetPH: "6.2", TargetEC: "1.6-1.8", DurationDays: 7,
				Additives: dosing.Additives{CalMag: 1, Enzyme: 2},
			},
			{
				Phase: "week 9", NitrogenCarrier: 0.1, StageCarrier: 0.6,
				TargetPH: "6.2", TargetEC: "1.2-1.4", DurationDays: 7,
				Additives: dosing.Additives{Enzyme: 2},
			},
			{
				Phase: "week 10", NitrogenCarrier: 0, StageCarrier: 0.3,
				TargetPH: "6.2", TargetEC: "0.8-1.0", DurationDays: 7,
				Additives: dosing.Additives{Enzyme: 2},
			},
		},
		Water:        fertilizer.DefaultTapWater.Clone(),
		OsmosisShare: 0,
	}
}
