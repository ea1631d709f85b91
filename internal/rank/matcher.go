package rank

import (
	"sort"
	"strings"

	"jobmatch-engine/internal/domain"
)

// Match pairs a record with its relevance score for one profile.
type Match struct {
	Job   domain.Job `json:"job"`
	Score int        `json:"score"`
}

// Matcher ranks aggregated records against a user profile.
type Matcher interface {
	Rank(profile domain.Profile, jobs []domain.Job) []Match
}

// Common words that add noise when tokenizing free text.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "job": true, "jobs": true,
	"looking": true, "want": true, "need": true, "about": true,
}

// KeywordMatcher scores records by keyword overlap: one point per profile
// keyword found in the record's title, description or skills.
type KeywordMatcher struct{}

func (KeywordMatcher) Rank(profile domain.Profile, jobs []domain.Job) []Match {
	keywords := profileKeywords(profile)

	out := make([]Match, len(jobs))
	for i, j := range jobs {
		text := strings.ToLower(j.Title + " " + j.Description + " " + strings.Join(j.Skills, " "))
		score := 0
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		out[i] = Match{Job: j, Score: score}
	}

	// Stable: ties keep aggregation order.
	sort.SliceStable(out, func(i, k int) bool { return out[i].Score > out[k].Score })
	return out
}

func profileKeywords(p domain.Profile) []string {
	var raw []string
	if len(p.Skills) > 0 || p.JobTitle != "" {
		raw = append(raw, p.Skills...)
		raw = append(raw, strings.Fields(p.JobTitle)...)
	} else {
		raw = strings.Fields(p.FreeText)
	}

	seen := make(map[string]bool, len(raw))
	var out []string
	for _, tok := range raw {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if len([]rune(tok)) <= 2 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
