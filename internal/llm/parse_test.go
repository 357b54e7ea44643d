package llm

import (
	"strings"
	"testing"

	"github.com/easynewsgr/easynews/internal/category"
)

func TestParseVerdictAccept(t *testing.T) {
	for _, raw := range []string{"ACCEPT", "accept", "  Accept  ", `"ACCEPT"`, "ACCEPT.", "ACCEPT - κατάλληλη"} {
		d := parseVerdict(raw)
		if !d.Accepted || d.Verdict != "ACCEPT" {
			t.Errorf("parseVerdict(%q) = %+v, want accepted", raw, d)
		}
	}
}

func TestParseVerdictReject(t *testing.T) {
	for _, raw := range []string{"REJECT", "reject, βίαιη είδηση", "Reject"} {
		d := parseVerdict(raw)
		if d.Accepted {
			t.Errorf("parseVerdict(%q) accepted, want rejected", raw)
		}
	}
}

func TestParseVerdictFailsClosed(t *testing.T) {
	malformed := []string{
		"",
		"   ",
		"MAYBE",
		"ACCEPTED",
		"Η είδηση είναι κατάλληλη",
		"ok ACCEPT",
	}
	for _, raw := range malformed {
		d := parseVerdict(raw)
		if d.Accepted {
			t.Errorf("parseVerdict(%q) accepted; unparseable verdicts must reject", raw)
		}
		if d.Verdict != "REJECT" {
			t.Errorf("parseVerdict(%q) verdict = %q, want REJECT", raw, d.Verdict)
		}
	}
}

func TestParseClassificationValid(t *testing.T) {
	raw := `{"category":"sports","confidence":0.87,"brief_reason":"αγώνας ποδοσφαίρου"}`
	res := parseClassification(raw, category.Other)

	if res.Category != category.Sports {
		t.Errorf("category = %q, want sports", res.Category)
	}
	if res.Confidence != 0.87 {
		t.Errorf("confidence = %v, want 0.87", res.Confidence)
	}
	if res.Reason == "" {
		t.Error("reason should be kept")
	}
}

func TestParseClassificationClampsConfidence(t *testing.T) {
	res := parseClassification(`{"category":"music","confidence":1.7,"brief_reason":"x"}`, category.Other)
	if res.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", res.Confidence)
	}
	res = parseClassification(`{"category":"music","confidence":-0.2,"brief_reason":"x"}`, category.Other)
	if res.Confidence != 0 {
		t.Errorf("confidence = %v, want clamped to 0", res.Confidence)
	}
}

func TestParseClassificationInvalidCategoryFallsBack(t *testing.T) {
	res := parseClassification(`{"category":"horoscope","confidence":0.9,"brief_reason":"x"}`, category.Other)
	if res.Category != category.Other {
		t.Errorf("category = %q, want fallback", res.Category)
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 on fallback", res.Confidence)
	}
}

func TestParseClassificationGarbageFallsBack(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"category":42}`} {
		res := parseClassification(raw, category.Fun)
		if res.Category != category.Fun || res.Confidence != 0 {
			t.Errorf("parseClassification(%q) = %+v, want fun/0", raw, res)
		}
	}
}

func TestParseSimplifiedStrictFormat(t *testing.T) {
	raw := "Τίτλος: Σεισμός στην Κρήτη\nΚείμενο: Έγινε σεισμός.\nΔεν χτύπησε κανείς."
	got := parseSimplified(raw, "αρχικός")

	if got.Title != "Σεισμός στην Κρήτη" {
		t.Errorf("title = %q", got.Title)
	}
	if !strings.Contains(got.Text, "Έγινε σεισμός.") || !strings.Contains(got.Text, "Δεν χτύπησε κανείς.") {
		t.Errorf("text lost content: %q", got.Text)
	}
	if strings.Contains(got.Text, "Τίτλος") {
		t.Errorf("label leaked into text: %q", got.Text)
	}
}

func TestParseSimplifiedLineHeuristic(t *testing.T) {
	raw := "Σεισμός στην Κρήτη\n\nΈγινε σεισμός κοντά στο Ηράκλειο. Δεν χτύπησε κανείς."
	got := parseSimplified(raw, "αρχικός")

	if got.Title != "Σεισμός στην Κρήτη" {
		t.Errorf("title = %q", got.Title)
	}
	if !strings.Contains(got.Text, "Ηράκλειο") {
		t.Errorf("text = %q", got.Text)
	}
}

func TestParseSimplifiedWholeTextFallback(t *testing.T) {
	raw := "Μία μόνο πρόταση χωρίς δομή."
	got := parseSimplified(raw, "αρχικός τίτλος")

	if got.Title != "αρχικός τίτλος" {
		t.Errorf("original title should be retained, got %q", got.Title)
	}
	if got.Text != "Μία μόνο πρόταση χωρίς δομή." {
		t.Errorf("text = %q", got.Text)
	}
}

func TestCleanSimplifiedScrubsLinks(t *testing.T) {
	in := "Δείτε [εδώ](https://x.gr/a) και https://y.gr/b για λεπτομέρειες."
	out := cleanSimplified(in)

	if strings.Contains(out, "http") {
		t.Errorf("URL survived: %q", out)
	}
	if !strings.Contains(out, "εδώ") {
		t.Errorf("link text should survive: %q", out)
	}
}
