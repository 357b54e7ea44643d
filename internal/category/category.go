// Package category defines the closed topic taxonomy articles are
// classified into.
package category

import (
	"github.com/easynewsgr/easynews/internal/textutil"
)

// Category is one key of the fixed taxonomy.
type Category string

const (
	Serious Category = "serious"
	Sports  Category = "sports"
	Movies  Category = "movies"
	Music   Category = "music"
	Theatre Category = "theatre"
	Series  Category = "series"
	Fun     Category = "fun"
	Other   Category = "other"
)

// Keys returns the taxonomy in canonical order.
func Keys() []Category {
	return []Category{Serious, Sports, Movies, Music, Theatre, Series, Fun, Other}
}

// KeyStrings returns the taxonomy as plain strings, for schema enums.
func KeyStrings() []string {
	keys := Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// Valid reports whether c is a member of the taxonomy.
func (c Category) Valid() bool {
	switch c {
	case Serious, Sports, Movies, Music, Theatre, Series, Fun, Other:
		return true
	}
	return false
}

// Legacy free-form labels seen from older classifier prompts, Greek and
// English, folded onto the canonical keys.
var synonyms = map[string]Category{
	"σοβαρα":            Serious,
	"σοβαρες ειδησεις":  Serious,
	"ειδησεις":          Serious,
	"news":              Serious,
	"politics":          Serious,
	"πολιτικη":          Serious,
	"economy":           Serious,
	"οικονομια":         Serious,
	"αθλητικα":          Sports,
	"αθλητισμος":        Sports,
	"sport":             Sports,
	"football":          Sports,
	"ποδοσφαιρο":        Sports,
	"σινεμα":            Movies,
	"ταινιες":           Movies,
	"ταινια":            Movies,
	"cinema":            Movies,
	"film":              Movies,
	"movie":             Movies,
	"μουσικη":           Music,
	"τραγουδια":         Music,
	"songs":             Music,
	"θεατρο":            Theatre,
	"παραστασεις":       Theatre,
	"stage":             Theatre,
	"σειρες":            Series,
	"τηλεοπτικες σειρες": Series,
	"tv":                Series,
	"television":        Series,
	"διασκεδαση":        Fun,
	"ψυχαγωγια":         Fun,
	"entertainment":     Fun,
	"lifestyle":         Fun,
	"αλλο":              Other,
	"αλλα":              Other,
	"διαφορα":           Other,
	"misc":              Other,
	"general":           Other,
}

// FromLabel maps a free-form classifier label onto the taxonomy.
// Canonical keys pass through unchanged, known synonyms fold onto their
// key (accent- and case-insensitively) and anything else resolves to
// fallback. Idempotent over canonical keys by construction.
func FromLabel(label string, fallback Category) Category {
	l := textutil.Normalize(label)
	if c := Category(l); c.Valid() {
		return c
	}
	if c, ok := synonyms[l]; ok {
		return c
	}
	return fallback
}
