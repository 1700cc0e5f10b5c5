package directory

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"eatery-scraper/models"
)

// The source renders each listing's contact block as "<address> <phone> "
// where the phone is always hyphenated as xxx-xxx-xxxx. The split below is
// pure offset arithmetic from the end of the concatenated text.
const (
	// PhoneSuffixLen is the trailing span holding the phone plus the final
	// separating space.
	PhoneSuffixLen = 13
	// AddressPhoneGap is how far from the end the address stops: the phone
	// suffix plus the space between address and phone.
	AddressPhoneGap = 14

	firstHyphenOffset  = 10
	secondHyphenOffset = 6
)

const (
	nameSelector  = "div.location-container"
	nameAttr      = "data-name"
	imageSelector = "img.location-img"
	textSelector  = "p"
)

// ParseFragment turns one listing fragment into a draft record tagged with
// area. Missing markup yields empty fields; it never fails.
func ParseFragment(fragment, area string) *models.Eatery {
	draft := models.NewDraft("")
	if area != "" {
		*draft.LocationAreas = append(*draft.LocationAreas, area)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return draft
	}

	draft.Name = doc.Find(nameSelector).First().AttrOr(nameAttr, "")
	img := doc.Find(imageSelector).First().AttrOr("src", "")
	draft.ImageURL = &img

	// A phone always comes with its address slot, even an empty one, so
	// address[i] and phone_number[i] stay paired.
	address, phone := SplitContactInfo(contactInfo(doc))
	if phone != "" {
		*draft.Address = append(*draft.Address, address)
		*draft.PhoneNumber = append(*draft.PhoneNumber, phone)
	} else if address != "" {
		*draft.Address = append(*draft.Address, address)
	}
	return draft
}

// contactInfo joins the text of every descriptive element that holds exactly
// one piece of text, each followed by a single space.
func contactInfo(doc *goquery.Document) string {
	var b strings.Builder
	doc.Find(textSelector).Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if text, ok := soleText(n); ok {
				b.WriteString(text)
				b.WriteByte(' ')
			}
		}
	})
	return b.String()
}

// soleText returns the text of n when n has exactly one child and that child
// is, or itself solely wraps, a text node. Elements with mixed or no content
// are skipped.
func soleText(n *html.Node) (string, bool) {
	child := n.FirstChild
	if child == nil || child.NextSibling != nil {
		return "", false
	}
	switch child.Type {
	case html.TextNode:
		return child.Data, true
	case html.ElementNode:
		return soleText(child)
	}
	return "", false
}

// SplitContactInfo separates the address from a trailing phone number. When
// the characters 10 and 6 positions from the end are both hyphens, the
// trailing PhoneSuffixLen characters minus the final space are the phone and
// everything before AddressPhoneGap is the address. Otherwise the whole text
// minus its trailing space is the address.
func SplitContactInfo(contact string) (address, phone string) {
	n := len(contact)
	if n == 0 {
		return "", ""
	}
	if n >= PhoneSuffixLen &&
		contact[n-firstHyphenOffset] == '-' &&
		contact[n-secondHyphenOffset] == '-' {
		cut := n - AddressPhoneGap
		if cut < 0 {
			cut = 0
		}
		return contact[:cut], contact[n-PhoneSuffixLen : n-1]
	}
	return contact[:n-1], ""
}
