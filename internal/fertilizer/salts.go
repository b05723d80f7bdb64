package fertilizer

import "growdash/internal/dosing"

// Stoichiometric oxide-to-element conversion factors. Fertilizer labels
// declare P, K, S, Mg and Ca as oxides; the ppm math needs the element.
const (
	P2O5ToP = 0.4365
	K2OToK  = 0.8301
	SO3ToS  = 0.4
	MgOToMg = 0.6030
	CaOToCa = 0.7147
)

// Salts is the composition table for every mineral salt used in the stock
// concentrate recipes. Fractions are mass fractions of the declared active
// compound; the factor converts oxide-declared compounds to the element
// and is 1 where the fraction is already elemental.
var Salts = map[string]dosing.Salt{
	"calcium nitrate": {
		Name: "calcium nitrate",
		Parts: []dosing.IonPart{
			{Element: dosing.N, Fraction: 0.155, Factor: 1},
			{Element: dosing.Ca, Fraction: 0.263, Factor: CaOToCa},
		},
	},
	"potassium nitrate": {
		Name: "potassium nitrate",
		Parts: []dosing.IonPart{
			{Element: dosing.N, Fraction: 0.137, Factor: 1},
			{Element: dosing.K, Fraction: 0.466, Factor: K2OToK},
		},
	},
	"magnesium nitrate": {
		Name: "magnesium nitrate",
		Parts: []dosing.IonPart{
			{Element: dosing.N, Fraction: 0.109, Factor: 1},
			{Element: dosing.Mg, Fraction: 0.158, Factor: MgOToMg},
		},
	},
	"monoammonium phosphate": {
		Name: "monoammonium phosphate",
		Parts: []dosing.IonPart{
			{Element: dosing.N, Fraction: 0.12, Factor: 1},
			{Element: dosing.P, Fraction: 0.61, Factor: P2O5ToP},
		},
	},
	"monopotassium phosphate": {
		Name: "monopotassium phosphate",
		Parts: []dosing.IonPart{
			{Element: dosing.P, Fraction: 0.52, Factor: P2O5ToP},
			{Element: dosing.K, Fraction: 0.34, Factor: K2OToK},
		},
	},
	"potassium sulfate": {
		Name: "potassium sulfate",
		Parts: []dosing.IonPart{
			{Element: dosing.K, Fraction: 0.54, Factor: K2OToK},
			{Element: dosing.S, Fraction: 0.45, Factor: SO3ToS},
		},
	},
	"potassium chloride": {
		Name: "potassium chloride",
		Parts: []dosing.IonPart{
			{Element: dosing.K, Fraction: 0.60, Factor: K2OToK},
			{Element: dosing.Cl, Fraction: 0.47, Factor: 1},
		},
	},
	"magnesium sulfate heptahydrate": {
		Name: "magnesium sulfate heptahydrate",
		Parts: []dosing.IonPart{
			{Element: dosing.Mg, Fraction: 0.163, Factor: MgOToMg},
			{Element: dosing.S, Fraction: 0.325, Factor: SO3ToS},
		},
	},
	"iron chelate": {
		Name: "iron chelate",
		Parts: []dosing.IonPart{
			{Element: dosing.Fe, Fraction: 0.13, Factor: 1},
		},
	},
	"boric acid": {
		Name: "boric acid",
		Parts: []dosing.IonPart{
			{Element: dosing.B, Fraction: 0.175, Factor: 1},
		},
	},
	"sodium molybdate": {
		Name: "sodium molybdate",
		Parts: []dosing.IonPart{
			{Element: dosing.Mo, Fraction: 0.397, Factor: 1},
			{Element: dosing.Na, Fraction: 0.187, Factor: 1},
		},
	},
	"manganese sulfate": {
		Name: "manganese sulfate",
		Parts: []dosing.IonPart{
			{Element: dosing.Mn, Fraction: 0.32, Factor: 1},
			{Element: dosing.S, Fraction: 0.19, Factor: 1},
		},
	},
	"zinc sulfate": {
		Name: "zinc sulfate",
		Parts: []dosing.IonPart{
			{Element: dosing.Zn, Fraction: 0.227, Factor: 1},
			{Element: dosing.S, Fraction: 0.112, Factor: 1},
		},
	},
	"copper sulfate": {
		Name: "copper sulfate",
		Parts: []dosing.IonPart{
			{Element: dosing.Cu, Fraction: 0.255, Factor: 1},
			{Element: dosing.S, Fraction: 0.128, Factor: 1},
		},
	},
}
