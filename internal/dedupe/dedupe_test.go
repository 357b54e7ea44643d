package dedupe

import "testing"

type item struct {
	url   string
	title string
}

func (i item) DedupeURL() string   { return i.url }
func (i item) DedupeTitle() string { return i.title }

func TestCollapsesByURL(t *testing.T) {
	in := []item{
		{url: "https://a.gr/1", title: "Πρώτος τίτλος"},
		{url: "HTTPS://A.GR/1", title: "Άλλος τίτλος"},
	}
	out := ByURLOrTitle(in)
	if len(out) != 1 {
		t.Fatalf("got %d items, want 1", len(out))
	}
	if out[0].title != "Πρώτος τίτλος" {
		t.Errorf("first occurrence should win, got %q", out[0].title)
	}
}

func TestCollapsesByNormalizedTitle(t *testing.T) {
	in := []item{
		{url: "https://a.gr/1", title: `«Μεγάλη»  νίκη για την ομάδα`},
		{url: "https://b.gr/2", title: `"ΜΕΓΑΛΗ" νίκη για την ομάδα`},
	}
	out := ByURLOrTitle(in)
	if len(out) != 1 {
		t.Fatalf("got %d items, want 1", len(out))
	}
}

func TestKeylessItemsAlwaysKept(t *testing.T) {
	in := []item{
		{url: "", title: ""},
		{url: "", title: "  "},
		{url: "", title: ""},
	}
	out := ByURLOrTitle(in)
	if len(out) != 3 {
		t.Errorf("keyless items must never collide, got %d of 3", len(out))
	}
}

func TestIdempotent(t *testing.T) {
	in := []item{
		{url: "https://a.gr/1", title: "Α"},
		{url: "https://a.gr/1", title: "Β"},
		{url: "https://b.gr/2", title: "Γιορτή στο χωριό"},
		{url: "https://c.gr/3", title: "γιορτή στο χωριό"},
	}
	once := ByURLOrTitle(in)
	twice := ByURLOrTitle(once)
	if len(once) != len(twice) {
		t.Fatalf("not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("item %d changed between passes", i)
		}
	}
}
