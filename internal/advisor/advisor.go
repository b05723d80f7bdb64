package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Suggestion holds the symptom toggles the model proposes for a leaf
// photo. It is a suggestion only; the grower confirms the toggles in the
// dashboard before any dose is calculated.
type Suggestion struct {
	Claw           bool    `json:"claw"`
	Pale           bool    `json:"pale"`
	CaMgDeficiency bool    `json:"camg_deficiency"`
	TipBurn        bool    `json:"tip_burn"`
	Confidence     float64 `json:"confidence"`
	Rationale      string  `json:"rationale"`
}

// Advisor analyzes leaf photos and suggests symptom toggles.
type Advisor struct {
	vision VisionModel
}

// NewAdvisor creates a new Advisor instance.
func NewAdvisor(vision VisionModel) *Advisor {
	return &Advisor{vision: vision}
}

// AnalyzeLeaf runs the vision model over a leaf photo and parses the
// suggested toggles. The phase label gives the model context so expected
// senescence in late flower is not flagged as deficiency.
func (a *Advisor) AnalyzeLeaf(ctx context.Context, format string, photo []byte, phase string) (*Suggestion, error) {
	prompt := fmt.Sprintf(`
You are a plant-health expert reviewing a single leaf photo from a cultivation journal.
The plant is currently in phase: "%s".

Assess the leaf for these specific symptoms:
- "claw": dark, downward-curling leaf tips typical of nitrogen excess
- "pale": overall pale or yellowing color typical of nitrogen deficiency (ignore normal late-flower senescence)
- "camg_deficiency": interveinal chlorosis or rust spotting typical of calcium/magnesium deficiency
- "tip_burn": crispy brown leaf tips typical of overfeeding

Return the result strictly as a JSON object with this structure:
{
  "claw": false,
  "pale": false,
  "camg_deficiency": false,
  "tip_burn": false,
  "confidence": 0.0,
  "rationale": "one short sentence explaining the assessment"
}

Do not include any other text or formatting in your response.
`, phase)

	response, err := a.vision.AnalyzeImage(ctx, format, photo, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to get vision response: %w", err)
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(cleanResponse(response)), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion JSON: %w. Response: %s", err, response)
	}

	return &suggestion, nil
}

// cleanResponse strips markdown code fences some models wrap JSON in.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
