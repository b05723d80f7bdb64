package labels

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed locales/*.json
var localesFS embed.FS

// Provider resolves structural label keys emitted by the dosing engine
// into display strings for one of the supported languages.
type Provider struct {
	languages map[string]map[string]string
}

// NewProvider loads the embedded locale files.
func NewProvider() (*Provider, error) {
	p := &Provider{languages: make(map[string]map[string]string)}
	for _, lang := range []string{"en", "de"} {
		data, err := localesFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", lang, err)
		}
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", lang, err)
		}
		p.languages[lang] = table
	}
	return p, nil
}

// Get resolves a key for the given language. Unknown languages fall back
// to English; unknown keys fall back to the key itself so a missing label
// never hides a weigh-table row.
func (p *Provider) Get(lang, key string) string {
	table, ok := p.languages[lang]
	if !ok {
		table = p.languages["en"]
	}
	if value, ok := table[key]; ok {
		return value
	}
	return key
}

// Languages lists the supported language codes.
func (p *Provider) Languages() []string {
	return []string{"en", "de"}
}
