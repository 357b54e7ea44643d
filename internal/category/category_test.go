package category

import "testing"

func TestValid(t *testing.T) {
	for _, k := range Keys() {
		if !k.Valid() {
			t.Errorf("taxonomy key %q reported invalid", k)
		}
	}
	for _, bad := range []Category{"", "greece", "SPORTS ", "unknown"} {
		if bad.Valid() {
			t.Errorf("%q should not be a valid category", bad)
		}
	}
}

func TestFromLabelCanonicalPassthrough(t *testing.T) {
	for _, k := range Keys() {
		if got := FromLabel(string(k), Other); got != k {
			t.Errorf("FromLabel(%q) = %q, want unchanged", k, got)
		}
	}
}

func TestFromLabelIdempotent(t *testing.T) {
	labels := []string{"ποδοσφαιρο", "cinema", "Entertainment", "whatever"}
	for _, l := range labels {
		first := FromLabel(l, Other)
		second := FromLabel(string(first), Other)
		if first != second {
			t.Errorf("FromLabel not idempotent for %q: %q then %q", l, first, second)
		}
	}
}

func TestFromLabelSynonyms(t *testing.T) {
	cases := map[string]Category{
		"Αθλητικα":      Sports,
		"CINEMA":        Movies,
		"μουσικη":       Music,
		"θεατρο":        Theatre,
		"television":    Series,
		"entertainment": Fun,
	}
	for in, want := range cases {
		if got := FromLabel(in, Other); got != want {
			t.Errorf("FromLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFromLabelUnknownFallsBack(t *testing.T) {
	if got := FromLabel("horoscope", Fun); got != Fun {
		t.Errorf("unknown label resolved to %q, want fallback", got)
	}
}
