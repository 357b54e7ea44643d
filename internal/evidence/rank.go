package evidence

import (
	"sort"

	"github.com/easynewsgr/easynews/internal/textutil"
)

// RankOptions tune ordering and truncation of filtered records.
type RankOptions struct {
	// WhitelistDomains earn a fixed score bonus (trusted outlets).
	WhitelistDomains []string
	// Max bounds the output size; defaults to 4.
	Max int
}

const (
	matchWeight      = 10
	recencyHorizon   = 14
	whitelistBonus   = 5
	defaultRankLimit = 4
)

// Rank scores each record as matchCount*10 + max(0, 14-|diffDays|) +
// whitelist bonus, sorts descending (stable on ties) and walks the
// result enforcing one record per host. Records without a derivable
// host fall back to URL, then title, as the uniqueness key; records
// with no key at all are skipped. Output never exceeds Max.
func Rank(records []Record, opts RankOptions) []Record {
	limit := opts.Max
	if limit <= 0 {
		limit = defaultRankLimit
	}

	whitelist := make(map[string]struct{}, len(opts.WhitelistDomains))
	for _, d := range opts.WhitelistDomains {
		whitelist[d] = struct{}{}
	}

	scored := make([]Record, len(records))
	for i, r := range records {
		if r.Host == "" {
			r.Host = textutil.Host(r.URL)
		}
		r.Score = float64(r.MatchCount * matchWeight)
		if r.DiffDays >= 0 {
			if bonus := recencyHorizon - r.DiffDays; bonus > 0 {
				r.Score += bonus
			}
		}
		if _, trusted := whitelist[r.Host]; trusted {
			r.Score += whitelistBonus
		}
		scored[i] = r
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	seen := make(map[string]struct{}, limit)
	out := make([]Record, 0, limit)
	for _, r := range scored {
		key := r.Host
		if key == "" {
			key = r.URL
		}
		if key == "" {
			key = r.Title
		}
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out
}
