package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const simplifyInstructions = `Γράφεις πολύ απλά ελληνικά για άτομα με νοητική υστέρηση.
Ξαναγράψε την είδηση σε πολύ απλή γλώσσα: σύντομες προτάσεις, καθημερινές λέξεις, μέχρι 10-12 προτάσεις.
Μην χρησιμοποιείς markdown και μην βάζεις συνδέσμους.
Απάντησε ΑΚΡΙΒΩΣ με αυτή τη μορφή:

Τίτλος: <απλός τίτλος>
Κείμενο: <το απλοποιημένο κείμενο>`

// Simplified is the rewritten article text.
type Simplified struct {
	Title string
	Text  string
}

// Simplify rewrites the article into plain language. The model output
// is parsed tolerantly (see parseSimplified); an empty Text means the
// rewrite produced nothing usable and the caller should keep the
// original text.
func (c *Client) Simplify(ctx context.Context, title, rawText, sourceURL string) (Simplified, error) {
	safeTitle := title
	if safeTitle == "" {
		safeTitle = "Είδηση"
	}
	sourceLine := ""
	if sourceURL != "" {
		sourceLine = "Πηγή: " + sourceURL + "\n"
	}
	prompt := fmt.Sprintf("%s\n\nΤίτλος: %s\n%sΚείμενο:\n%s", simplifyInstructions, safeTitle, sourceLine, rawText)

	out, err := c.generateWithRetry(ctx, prompt, nil)
	if err != nil {
		return Simplified{}, fmt.Errorf("simplify: %w", err)
	}

	return parseSimplified(out, safeTitle), nil
}

// The strict two-field format the prompt asks for.
var simplifiedFormat = regexp.MustCompile(`(?is)Τίτλος\s*:\s*(.+?)\s*(?:\n|$).*?Κείμενο\s*:\s*(.+)`)

var titleLabel = regexp.MustCompile(`(?i)^Τίτλος\s*:\s*`)

// parseSimplified recovers title and body from model output in three
// tiers: the strict Τίτλος/Κείμενο format, then first non-empty line as
// title with the remainder as body, then the whole output as body with
// the original title retained.
func parseSimplified(raw, fallbackTitle string) Simplified {
	cleaned := strings.TrimSpace(raw)

	if m := simplifiedFormat.FindStringSubmatch(cleaned); m != nil {
		title := cleanSimplified(m[1])
		if title == "" {
			title = fallbackTitle
		}
		return Simplified{Title: title, Text: cleanSimplified(m[2])}
	}

	lines := strings.Split(cleaned, "\n")
	var nonEmpty []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(l))
		}
	}
	if len(nonEmpty) >= 2 {
		title := cleanSimplified(titleLabel.ReplaceAllString(nonEmpty[0], ""))
		if title == "" {
			title = fallbackTitle
		}
		rest := strings.Join(nonEmpty[1:], "\n")
		return Simplified{Title: title, Text: cleanSimplified(rest)}
	}

	return Simplified{Title: fallbackTitle, Text: cleanSimplified(cleaned)}
}

var (
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(https?://[^)]+\)`)
	bareURL      = regexp.MustCompile(`https?://\S+`)
	trailingWS   = regexp.MustCompile(`[ \t]+\n`)
)

// cleanSimplified scrubs markdown links and bare URLs the model slips
// into rewritten text.
func cleanSimplified(text string) string {
	t := markdownLink.ReplaceAllString(text, "$1")
	t = bareURL.ReplaceAllString(t, "")
	t = trailingWS.ReplaceAllString(t, "\n")
	return strings.TrimSpace(t)
}
