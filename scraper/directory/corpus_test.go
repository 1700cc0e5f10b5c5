package directory

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"eatery-scraper/models"
	"eatery-scraper/utils"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want LineKind
	}{
		{"505 E Green St, Champaign", KindAddress},
		{"2173440000", KindPhone},
		{"217344000", KindUnknown},
		{"www.example.com", KindWebsite},
		// a comma wins over every other predicate
		{"a.b, c", KindAddress},
		// ten characters with a period is a website, not a phone
		{"217.344.00", KindWebsite},
		{"Open late", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		if got := ClassifyLine(tt.line); got != tt.want {
			t.Errorf("ClassifyLine(%q) = %v; want %v", tt.line, got, tt.want)
		}
	}
}

const sampleCorpus = `-- MEXICAN --

Maize Mexican Grill
60 E Green St, Champaign
2173556400
maizemexicangrill.com

El Toro
723 S Neil St, Champaign
2 E Main St, Urbana
2173986000
eltoro.com
eltoro2.com
Open late

-- BAR & GRILL --

Murphy's Pub
604 E Green St, Champaign
`

func TestCorpusParse(t *testing.T) {
	p := NewCorpusParser(utils.NewDiscardLogger())

	records, err := p.Parse(strings.NewReader(sampleCorpus))
	if err != nil {
		t.Fatal(err)
	}

	want := []*models.Eatery{
		draft("Maize Mexican Grill", "Mexican",
			[]string{"60 E Green St, Champaign"}, []string{"2173556400"}, []string{"maizemexicangrill.com"}),
		draft("El Toro", "Mexican",
			[]string{"723 S Neil St, Champaign", "2 E Main St, Urbana"}, []string{"2173986000"},
			[]string{"eltoro.com", "eltoro2.com"}),
		draft("Murphy's Pub", "Bar & Grill",
			[]string{"604 E Green St, Champaign"}, []string{}, []string{}),
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestCorpusParseCRLF(t *testing.T) {
	p := NewCorpusParser(utils.NewDiscardLogger())
	records, err := p.Parse(strings.NewReader("-- THAI --\r\n\r\nBangkok Thai\r\n410 E Green St, Champaign\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Cuisine != "Thai" || len(records[0].Addresses()) != 1 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestCorpusParseIndentedLines(t *testing.T) {
	p := NewCorpusParser(utils.NewDiscardLogger())
	records, err := p.Parse(strings.NewReader("-- CAFE --\n\nKopi\n  2173556400\n\t109 N Walnut St, Champaign \n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []*models.Eatery{
		draft("Kopi", "Cafe", []string{"109 N Walnut St, Champaign"}, []string{"2173556400"}, []string{}),
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func draft(name, cuisine string, addresses, phones, websites []string) *models.Eatery {
	d := models.NewDraft(name)
	d.Cuisine = cuisine
	*d.Address = addresses
	*d.PhoneNumber = phones
	*d.Website = websites
	return d
}
