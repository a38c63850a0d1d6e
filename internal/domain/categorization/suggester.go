// Package categorization proposes a spending category for a vendor
// string. Known vendor keywords are matched in a single Aho-Corasick pass;
// unmatched vendors fall back to fuzzy matching so typo'd or truncated
// POS names still resolve. Suggestions are advisory; capture flows that
// assign a fixed label (like "SMS") keep doing so.
package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Rule maps a vendor keyword to a category. Patterns are matched
// case-insensitively as substrings of the vendor text.
type Rule struct {
	Pattern  string
	Category string
}

// DefaultRules cover vendors that show up in Omani bank messages.
var DefaultRules = []Rule{
	{"LULU", "Groceries"},
	{"CARREFOUR", "Groceries"},
	{"SULTAN CENTER", "Groceries"},
	{"NESTO", "Groceries"},
	{"SHELL", "Fuel"},
	{"OMAN OIL", "Fuel"},
	{"AL MAHA", "Fuel"},
	{"OOREDOO", "Telecom"},
	{"OMANTEL", "Telecom"},
	{"TALABAT", "Dining"},
	{"MCDONALDS", "Dining"},
	{"STARBUCKS", "Dining"},
	{"AMAZON", "Shopping"},
	{"NOON", "Shopping"},
	{"PHARMACY", "Health"},
	{"NETFLIX", "Subscriptions"},
	{"SPOTIFY", "Subscriptions"},
}

// maxFuzzyRank bounds the edit distance accepted by the fuzzy fallback.
const maxFuzzyRank = 2

// Suggester matches vendors against a rule set. Build once, reuse.
type Suggester struct {
	matcher *ahocorasick.Matcher
	rules   []Rule
}

// NewSuggester compiles the rules. Earlier rules win on multiple matches.
func NewSuggester(rules []Rule) *Suggester {
	patterns := make([][]byte, len(rules))
	for i, r := range rules {
		patterns[i] = []byte(strings.ToUpper(r.Pattern))
	}
	return &Suggester{
		matcher: ahocorasick.NewMatcher(patterns),
		rules:   rules,
	}
}

// Suggest returns the category for a vendor, or false when nothing
// matches confidently enough.
func (s *Suggester) Suggest(vendor string) (string, bool) {
	v := strings.ToUpper(strings.TrimSpace(vendor))
	if v == "" {
		return "", false
	}

	if hits := s.matcher.Match([]byte(v)); len(hits) > 0 {
		best := hits[0]
		for _, h := range hits[1:] {
			if h < best {
				best = h
			}
		}
		return s.rules[best].Category, true
	}

	// Short tokens make the edit-distance fallback too noisy.
	if len(v) < 4 {
		return "", false
	}

	bestRank := -1
	bestCategory := ""
	for _, r := range s.rules {
		rank := fuzzy.RankMatchFold(v, r.Pattern)
		if rank < 0 || rank > maxFuzzyRank {
			continue
		}
		if bestRank == -1 || rank < bestRank {
			bestRank = rank
			bestCategory = r.Category
		}
	}
	if bestRank == -1 {
		return "", false
	}
	return bestCategory, true
}
