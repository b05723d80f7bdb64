package plan

import (
	"encoding/json"
	"strconv"

	"growdash/internal/dosing"
)

// looseFloat decodes JSON numbers leniently: plain numbers and numeric
// strings parse normally, everything else (null, bad strings, objects)
// becomes 0. Hand-edited plan documents must never fail a calculation.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		*f = looseFloat(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if parsed, err := strconv.ParseFloat(str, 64); err == nil {
			*f = looseFloat(parsed)
		}
	}
	return nil
}

type additivesDoc struct {
	CalMag        looseFloat `json:"calmag"`
	Enzyme        looseFloat `json:"enzyme"`
	RootBoost     looseFloat `json:"root_boost"`
	RootBoostUnit string     `json:"root_boost_unit"`
}

type entryDoc struct {
	Phase           string       `json:"phase"`
	NitrogenCarrier looseFloat   `json:"nitrogen_carrier"`
	StageCarrier    looseFloat   `json:"stage_carrier"`
	BloomBooster    looseFloat   `json:"bloom_booster"`
	TargetPH        string       `json:"target_ph"`
	TargetEC        string       `json:"target_ec"`
	Additives       additivesDoc `json:"additives"`
	DurationDays    looseFloat   `json:"duration_days"`
	NoteKeys        []string     `json:"note_keys"`
}

type planDoc struct {
	Entries      []entryDoc            `json:"entries"`
	Water        map[string]looseFloat `json:"water"`
	OsmosisShare looseFloat            `json:"osmosis_share"`
}

func nonNegative(v looseFloat) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}

// DecodePlan parses a stored plan document into a ManagedPlan, applying
// the model invariants: non-numeric fields become 0, base doses are
// non-negative, osmosis share is clamped to [0,1] and entry durations
// default to 7 days.
func DecodePlan(data []byte) (dosing.ManagedPlan, error) {
	var doc planDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return dosing.ManagedPlan{}, err
	}

	plan := dosing.ManagedPlan{
		Water: dosing.NewProfile(),
	}

	for symbol, value := range doc.Water {
		plan.Water[dosing.Element(symbol)] = nonNegative(value)
	}

	share := float64(doc.OsmosisShare)
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	plan.OsmosisShare = share

	for _, e := range doc.Entries {
		unit := dosing.PerLiter
		if e.Additives.RootBoostUnit == string(dosing.PerPlant) {
			unit = dosing.PerPlant
		}
		duration := int(e.DurationDays)
		if duration <= 0 {
			duration = 7
		}
		plan.Entries = append(plan.Entries, dosing.PlanEntry{
			Phase:           e.Phase,
			NitrogenCarrier: nonNegative(e.NitrogenCarrier),
			StageCarrier:    nonNegative(e.StageCarrier),
			BloomBooster:    nonNegative(e.BloomBooster),
			TargetPH:        e.TargetPH,
			TargetEC:        e.TargetEC,
			Additives: dosing.Additives{
				CalMag:        nonNegative(e.Additives.CalMag),
				Enzyme:        nonNegative(e.Additives.Enzyme),
				RootBoost:     nonNegative(e.Additives.RootBoost),
				RootBoostUnit: unit,
			},
			DurationDays: duration,
			NoteKeys:     e.NoteKeys,
		})
	}

	return plan, nil
}

// EncodePlan serializes a ManagedPlan for storage.
func EncodePlan(p dosing.ManagedPlan) ([]byte, error) {
	return json.Marshal(p)
}
