// Package slug derives URL slugs from display names.
package slug

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/speps/go-hashids/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Make lower-cases s, folds accents to ASCII and joins words with hyphens.
// "Loch Ness & Café" becomes "loch-ness-cafe".
func Make(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// Disambiguator appends short, stable suffixes to slugs that already exist.
type Disambiguator struct {
	hd *hashids.HashID
}

func NewDisambiguator(salt string) (*Disambiguator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.Alphabet = alphabet
	data.MinLength = 6

	hd, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("hashids: %w", err)
	}

	return &Disambiguator{hd: hd}, nil
}

// Suffix returns base with a hashid of seeds appended.
func (d *Disambiguator) Suffix(base string, seeds ...int64) (string, error) {
	id, err := d.hd.EncodeInt64(seeds)
	if err != nil {
		return "", fmt.Errorf("encode slug suffix: %w", err)
	}
	if base == "" {
		return id, nil
	}
	return base + "-" + id, nil
}
