package textutil

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeStripsAccentsAndPunctuation(t *testing.T) {
	got := Normalize("Σεισμός 5,2 Ρίχτερ — «ισχυρή» δόνηση στην Κρήτη!")
	want := "σεισμος 5 2 ριχτερ ισχυρη δονηση στην κρητη"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  Καλημέρα,  κόσμε!  ",
		"Überraschung für alle",
		"ACCEPT — ok",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("   \t\n"); got != "" {
		t.Errorf("Normalize(whitespace) = %q, want empty", got)
	}
}

func TestNormalizeTitleDropsQuoteVariants(t *testing.T) {
	a := NormalizeTitle(`«Μεγάλη» νίκη  για την ομάδα`)
	b := NormalizeTitle(`"ΜΕΓΑΛΗ" νίκη για την ομάδα`)
	if a != b {
		t.Errorf("titles should normalize equal: %q vs %q", a, b)
	}
}

func TestHost(t *testing.T) {
	cases := map[string]string{
		"https://www.ertnews.gr/eidiseis/article-1": "ertnews.gr",
		"http://sport24.gr:8080/x":                  "sport24.gr",
		"ertnews.gr":                                "ertnews.gr",
		"":                                          "",
	}
	for in, want := range cases {
		if got := Host(in); got != want {
			t.Errorf("Host(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeywordsLimitAndUniqueness(t *testing.T) {
	text := "σεισμός σεισμός Κρήτη Κρήτη δόνηση ρίχτερ Ηράκλειο κάτοικοι δρόμους σχολεία"
	kws := Keywords(text, 4)
	if len(kws) > 4 {
		t.Fatalf("got %d keywords, limit was 4", len(kws))
	}
	seen := map[string]bool{}
	for _, k := range kws {
		if seen[k] {
			t.Errorf("duplicate keyword %q", k)
		}
		seen[k] = true
	}
	if kws[0] != "σεισμος" {
		t.Errorf("first-seen order lost, got %v", kws)
	}
}

func TestKeywordsDropsStopwordsAndShortTokens(t *testing.T) {
	kws := Keywords("και το αι στην Αθήνα με βροχή", 10)
	for _, k := range kws {
		if _, stop := stopwords[k]; stop {
			t.Errorf("stopword %q leaked into keywords", k)
		}
		if len([]rune(k)) < 3 {
			t.Errorf("short token %q leaked into keywords", k)
		}
	}
}

func TestBuildSearchQuery(t *testing.T) {
	ev := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	sq := BuildSearchQuery("Σεισμός στην Κρήτη", "Ισχυρή δόνηση κοντά στο Ηράκλειο", ev, 6)

	if !strings.HasPrefix(sq.Query, "Σεισμός στην Κρήτη") {
		t.Errorf("query should start with the headline, got %q", sq.Query)
	}
	if !strings.HasSuffix(sq.Query, "2025-03-14") {
		t.Errorf("query should end with the event date, got %q", sq.Query)
	}
	if len(sq.Entities) == 0 {
		t.Fatal("expected entities")
	}
}

func TestBuildSearchQueryEmptyTitle(t *testing.T) {
	sq := BuildSearchQuery("", "", time.Time{}, 6)
	if sq.Query == "" {
		t.Error("expected a non-empty placeholder query")
	}
	if !sq.EventDate.IsZero() {
		t.Error("event date should stay zero")
	}
}
