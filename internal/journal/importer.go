package journal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Importer pulls observation entries out of grow-diary HTML exports and
// stores them in the journal.
type Importer struct {
	repo       *Repository
	httpClient *http.Client
}

// NewImporter creates a new Importer.
func NewImporter(repo *Repository) *Importer {
	return &Importer{
		repo:       repo,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ImportURL fetches a diary export from a URL and saves every parsed
// entry. Returns the number of entries imported.
func (i *Importer) ImportURL(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch diary export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch diary export: status %d", resp.StatusCode)
	}

	entries, err := ParseDiaryHTML(resp.Body)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, e := range entries {
		if err := i.repo.Save(ctx, e); err != nil {
			return imported, fmt.Errorf("failed to save imported entry %s: %w", e.ID, err)
		}
		imported++
	}
	return imported, nil
}

// ParseDiaryHTML extracts journal entries from a diary export document.
// Each <article> becomes one entry: the first heading is the title, an
// element with a data-phase attribute (or .phase class) supplies the
// phase label, and the paragraphs form the body.
func ParseDiaryHTML(r io.Reader) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diary HTML: %w", err)
	}

	// Remove noise before extraction.
	doc.Find("script, style, nav, footer, iframe").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	var entries []Entry
	doc.Find("article").Each(func(idx int, article *goquery.Selection) {
		title := strings.TrimSpace(article.Find("h1, h2, h3").First().Text())
		if title == "" {
			return
		}

		phase, ok := article.Attr("data-phase")
		if !ok {
			phase = strings.TrimSpace(article.Find(".phase").First().Text())
		}

		var paragraphs []string
		article.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})

		entries = append(entries, Entry{
			ID:    fmt.Sprintf("%s-%d", slugify(title), idx),
			Title: title,
			Body:  strings.Join(paragraphs, "\n\n"),
			Phase: phase,
		})
	})

	return entries, nil
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
