package services

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"eatery-scraper/models"
	"eatery-scraper/utils"
)

const tagPrompt = "Enter location areas (comma separated): "

// AreaLookup resolves a shorthand area code.
type AreaLookup interface {
	Lookup(code string) (string, bool)
}

// Tagger walks a collection asking an operator which areas each address
// belongs to. It saves after every record so a session can be resumed from
// the returned offset.
type Tagger struct {
	areas  AreaLookup
	logger *utils.Logger
}

func NewTagger(areas AreaLookup, logger *utils.Logger) *Tagger {
	return &Tagger{areas: areas, logger: logger}
}

// Run tags records from offset start onward, reading answers from in and
// writing prompts to out. save receives the whole collection after each
// completed record. It returns the offset of the first untagged record,
// which is len(records) when every record was tagged.
func (t *Tagger) Run(records []*models.Eatery, start int, in io.Reader, out io.Writer,
	save func([]*models.Eatery) error) (int, error) {
	if start < 0 || start > len(records) {
		return start, fmt.Errorf("tagger: start %d out of range [0, %d]", start, len(records))
	}

	working := make([]*models.Eatery, len(records))
	copy(working, records)
	scanner := bufio.NewScanner(in)

	for i := start; i < len(working); i++ {
		rec := working[i].Clone()
		if rec.LocationAreas == nil {
			rec.LocationAreas = &[]string{}
		}

		fmt.Fprintln(out, rec.Name)
		for _, addr := range rec.Addresses() {
			fmt.Fprintln(out, addr)
			tagged := false
			for !tagged {
				fmt.Fprint(out, tagPrompt)
				if !scanner.Scan() {
					if err := scanner.Err(); err != nil {
						return i, fmt.Errorf("tagger: read input: %w", err)
					}
					t.logger.Info("[tagger] Input closed, resume from %d", i)
					return i, nil
				}
				answer := scanner.Text()
				for _, code := range strings.Split(answer, ",") {
					area, ok := t.areas.Lookup(code)
					if !ok {
						fmt.Fprintf(out, "'%s' is not a location area.\n", answer)
						continue
					}
					*rec.LocationAreas = append(*rec.LocationAreas, area)
					tagged = true
				}
			}
		}

		working[i] = rec
		if err := save(working); err != nil {
			return i, fmt.Errorf("tagger: save after %q: %w", rec.Name, err)
		}
		t.logger.Debug("[tagger] Tagged %d/%d: %s", i+1, len(working), rec.Name)
	}
	return len(working), nil
}
