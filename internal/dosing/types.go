package dosing

// Element is one of the 14 tracked nutrient elements.
type Element string

const (
	N  Element = "N"
	P  Element = "P"
	K  Element = "K"
	Ca Element = "Ca"
	Mg Element = "Mg"
	S  Element = "S"
	Na Element = "Na"
	Fe Element = "Fe"
	B  Element = "B"
	Mo Element = "Mo"
	Mn Element = "Mn"
	Zn Element = "Zn"
	Cu Element = "Cu"
	Cl Element = "Cl"
)

// Elements lists all tracked elements in display order.
var Elements = []Element{N, P, K, Ca, Mg, S, Na, Fe, B, Mo, Mn, Zn, Cu, Cl}

// ElementalProfile maps an element to the ppm it contributes per
// gram-per-liter of the component it describes.
type ElementalProfile map[Element]float64

// NewProfile returns a profile with every tracked element set to zero.
func NewProfile() ElementalProfile {
	p := make(ElementalProfile, len(Elements))
	for _, e := range Elements {
		p[e] = 0
	}
	return p
}

// Clone returns an independent copy of the profile.
func (p ElementalProfile) Clone() ElementalProfile {
	out := NewProfile()
	for e, v := range p {
		out[e] = v
	}
	return out
}

// Component identifies one dosed concentrate or additive with a fixed
// elemental profile.
type Component string

const (
	CompNitrogenCarrier Component = "nitrogen_carrier"
	CompVegCarrier      Component = "veg_carrier"
	CompBloomCarrier    Component = "bloom_carrier"
	CompBloomBooster    Component = "bloom_booster"
	CompCalMag          Component = "calmag"
	CompEnzyme          Component = "enzyme"
	CompRootBoost       Component = "root_boost"
	CompFlushAgent      Component = "flush_agent"
)

// ProfileTable holds the precomputed elemental profile of every component.
// It is built once at startup and treated as read-only afterwards.
type ProfileTable map[Component]ElementalProfile

// DoseUnit tags how an additive amount is to be measured.
type DoseUnit string

const (
	PerLiter DoseUnit = "per_liter"
	PerPlant DoseUnit = "per_plant"
)

// Additives holds the optional secondary additive amounts of a plan entry.
// CalMag and Enzyme are dosed per liter; RootBoost carries its own unit tag.
type Additives struct {
	CalMag        float64  `json:"calmag"`
	Enzyme        float64  `json:"enzyme"`
	RootBoost     float64  `json:"root_boost"`
	RootBoostUnit DoseUnit `json:"root_boost_unit"`
}

// PlanEntry is one row of a feeding plan for a single phase. Base dose
// amounts are grams per liter of reservoir water.
type PlanEntry struct {
	Phase           string    `json:"phase"`
	NitrogenCarrier float64   `json:"nitrogen_carrier"`
	StageCarrier    float64   `json:"stage_carrier"`
	BloomBooster    float64   `json:"bloom_booster"`
	TargetPH        string    `json:"target_ph"`
	TargetEC        string    `json:"target_ec"`
	Additives       Additives `json:"additives"`
	DurationDays    int       `json:"duration_days"`
	NoteKeys        []string  `json:"note_keys,omitempty"`
}

// ManagedPlan is an ordered feeding plan plus the grower's water profile.
type ManagedPlan struct {
	Entries      []PlanEntry      `json:"entries"`
	Water        ElementalProfile `json:"water"`
	OsmosisShare float64          `json:"osmosis_share"`
}

// EntryFor returns the entry matching the given phase label, or nil if the
// plan has no row for that phase.
func (p *ManagedPlan) EntryFor(phase string) *PlanEntry {
	for i := range p.Entries {
		if p.Entries[i].Phase == phase {
			return &p.Entries[i]
		}
	}
	return nil
}

// ECTrend is the observed reservoir EC trend since the last measurement.
type ECTrend string

const (
	ECNeutral ECTrend = "neutral"
	ECRising  ECTrend = "rising"
	ECFalling ECTrend = "falling"
)

// PHDrift is the observed reservoir pH drift.
type PHDrift string

const (
	PHNormal PHDrift = "normal"
	PHHigh   PHDrift = "high"
	PHLow    PHDrift = "low"
)

// DoseInput is the per-request context for one calculation. All fields are
// immutable inputs; nothing is persisted.
type DoseInput struct {
	Phase           string  `json:"phase"`
	ReservoirLiters float64 `json:"reservoir_liters"`
	Substrate       string  `json:"substrate"`
	ECTrend         ECTrend `json:"ec_trend"`
	Claw            bool    `json:"claw"`
	Pale            bool    `json:"pale"`
	CaMgDeficiency  bool    `json:"camg_deficiency"`
	TipBurn         bool    `json:"tip_burn"`
	PHDrift         PHDrift `json:"ph_drift"`
}

// Doses holds gram-per-liter amounts for the three dosed components.
type Doses struct {
	NitrogenCarrier float64 `json:"nitrogen_carrier"`
	StageCarrier    float64 `json:"stage_carrier"`
	BloomBooster    float64 `json:"bloom_booster"`
}

// WeighRow is one line of the human-readable weigh table. NameKey and
// NoteKey are label keys resolved by the caller's translation provider.
type WeighRow struct {
	NameKey  string  `json:"name_key"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	NoteKey  string  `json:"note_key,omitempty"`
	Category string  `json:"category"`
	PerPlant bool    `json:"per_plant"`
}

// Weigh row categories.
const (
	CategoryBase      = "base"
	CategoryAdditive  = "additive"
	CategoryFinishing = "finishing"
)

// CalculationResult is the output of one engine call. It is freshly
// allocated per call and never mutated after return.
type CalculationResult struct {
	Base       Doses            `json:"base"`
	Delta      Doses            `json:"delta"`
	Adjusted   Doses            `json:"adjusted"`
	ECDisplay  string           `json:"ec_display"`
	ECNoteKey  string           `json:"ec_note_key,omitempty"`
	WeighTable []WeighRow       `json:"weigh_table"`
	PPM        ElementalProfile `json:"ppm"`
	NPKRatio   string           `json:"npk_ratio"`
	Stage      StageClass       `json:"stage"`
}
