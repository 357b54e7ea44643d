package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/easynewsgr/easynews/internal/logger"
)

const gateInstructions = `Είσαι πύλη ελέγχου ειδήσεων για μια ιστοσελίδα με απλοποιημένες ειδήσεις.
Διάβασε τον τίτλο και το κείμενο και αποφάσισε αν η είδηση είναι κατάλληλη.
Απόρριψε ειδήσεις που μιλούν κυρίως για πόλεμο, εγκλήματα, βία, σοβαρά ατυχήματα, θανάτους ή σεξουαλική κακοποίηση.
Απάντησε με ΜΙΑ μόνο λέξη: ACCEPT ή REJECT. Τίποτα άλλο.`

// GateDecision is the gate's verdict for one article.
type GateDecision struct {
	Accepted bool
	Verdict  string
}

// Gatekeep asks the model for an ACCEPT/REJECT verdict on the raw
// article. Any output that does not start with one of the two tokens,
// and any call failure, counts as REJECT. Fail-closed: the gate never
// accepts an unparseable verdict.
func (c *Client) Gatekeep(ctx context.Context, title, rawText string) GateDecision {
	if title == "" {
		title = "Είδηση"
	}
	prompt := fmt.Sprintf("%s\n\nΤίτλος: %s\n\nΚείμενο:\n%s", gateInstructions, title, rawText)

	out, err := c.generate(ctx, prompt, func(m *genai.GenerativeModel) {
		m.SetMaxOutputTokens(20)
	})
	if err != nil {
		logger.Warn("gate call failed, rejecting", "title", title, "error", err)
		return GateDecision{Accepted: false, Verdict: "REJECT"}
	}

	return parseVerdict(out)
}

// parseVerdict normalizes model output and matches the leading token.
func parseVerdict(raw string) GateDecision {
	t := strings.ToUpper(strings.TrimSpace(raw))
	t = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '`':
			return -1
		}
		return r
	}, t)

	switch {
	case hasTokenPrefix(t, "ACCEPT"):
		return GateDecision{Accepted: true, Verdict: "ACCEPT"}
	case hasTokenPrefix(t, "REJECT"):
		return GateDecision{Accepted: false, Verdict: "REJECT"}
	}
	return GateDecision{Accepted: false, Verdict: "REJECT"}
}

// hasTokenPrefix matches token as a whole leading word: "ACCEPT" and
// "ACCEPT." qualify, "ACCEPTED" does not.
func hasTokenPrefix(s, token string) bool {
	if !strings.HasPrefix(s, token) {
		return false
	}
	rest := s[len(token):]
	if rest == "" {
		return true
	}
	c := rest[0]
	isWord := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
	return !isWord
}
