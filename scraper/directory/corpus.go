package directory

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"eatery-scraper/models"
	"eatery-scraper/utils"
)

// LineKind is what a corpus entry line was classified as.
type LineKind int

const (
	KindUnknown LineKind = iota
	KindAddress
	KindPhone
	KindWebsite
)

const (
	headingPrefix = "--"
	entrySep      = "\n\n"
	// phoneDigits is the length of an unformatted phone number line.
	phoneDigits = 10
)

// ClassifyLine applies the corpus predicates in order: a comma makes an
// address, exactly ten characters without a period make a phone, and any
// period makes a website. The first match wins.
func ClassifyLine(line string) LineKind {
	switch {
	case strings.Contains(line, ","):
		return KindAddress
	case utf8.RuneCountInString(line) == phoneDigits && !strings.Contains(line, "."):
		return KindPhone
	case strings.Contains(line, "."):
		return KindWebsite
	}
	return KindUnknown
}

// CorpusParser reads the hand-edited offline corpus: entries separated by a
// blank line, cuisine headings as lines wrapped in "--", and within each
// entry the name first followed by address, phone, and website lines in any
// order.
type CorpusParser struct {
	logger *utils.Logger
	title  cases.Caser
}

func NewCorpusParser(logger *utils.Logger) *CorpusParser {
	return &CorpusParser{logger: logger, title: cases.Title(language.English)}
}

// Parse returns one draft per entry, in corpus order.
func (p *CorpusParser) Parse(r io.Reader) ([]*models.Eatery, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("corpus: read: %w", err)
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")

	var (
		records []*models.Eatery
		cuisine string
		dropped int
	)
	for _, entry := range strings.Split(content, entrySep) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		lines := strings.Split(entry, "\n")

		if strings.HasPrefix(lines[0], headingPrefix) {
			cuisine = p.title.String(strings.TrimSpace(strings.Trim(lines[0], "-")))
			continue
		}

		rec := models.NewDraft(strings.TrimSpace(lines[0]))
		rec.Cuisine = cuisine
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			switch ClassifyLine(line) {
			case KindAddress:
				*rec.Address = append(*rec.Address, line)
			case KindPhone:
				*rec.PhoneNumber = append(*rec.PhoneNumber, line)
			case KindWebsite:
				*rec.Website = append(*rec.Website, line)
			default:
				if line != "" {
					dropped++
					p.logger.Debug("[corpus] %s: dropping unclassified line %q", rec.Name, line)
				}
			}
		}
		records = append(records, rec)
	}

	p.logger.Info("[corpus] Parsed %d records (%d unclassified lines dropped)", len(records), dropped)
	return records, nil
}
