package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"jobmatch-engine/internal/domain"
)

// Text signatures of fake or placeholder records.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`lorem ipsum`),
	regexp.MustCompile(`example\.com`),
	regexp.MustCompile(`test company`),
	regexp.MustCompile(`sample job`),
	regexp.MustCompile(`placeholder`),
	regexp.MustCompile(`mock data`),
	regexp.MustCompile(`n/a`),
	regexp.MustCompile(`not specified`),
	regexp.MustCompile(`#$`),
}

var placeholderCompanies = map[string]bool{
	"n/a":     true,
	"unknown": true,
	"none":    true,
	"test":    true,
}

var fakeDomains = []string{"example.com", "test.com", "localhost"}

// Stats is the running tally across Validate calls.
type Stats struct {
	Total   int
	Valid   int
	Invalid int
}

// Validator decides whether a canonical record meets minimum quality bars.
// Safe for concurrent use.
type Validator struct {
	mu    sync.Mutex
	stats Stats
}

func New() *Validator {
	return &Validator{}
}

// Validate checks one record and returns its validity plus every issue
// found. Missing required fields short-circuit: only the missing-field
// issues are reported and the remaining rules are skipped.
func (v *Validator) Validate(job domain.Job) (bool, []string) {
	issues := missingFields(job)
	if len(issues) == 0 {
		issues = v.contentIssues(job)
	}

	valid := len(issues) == 0
	v.mu.Lock()
	v.stats.Total++
	if valid {
		v.stats.Valid++
	} else {
		v.stats.Invalid++
	}
	v.mu.Unlock()

	return valid, issues
}

func missingFields(job domain.Job) []string {
	required := []struct {
		name  string
		value string
	}{
		{"title", job.Title},
		{"company", job.Company},
		{"location", job.Location},
		{"description", job.Description},
		{"platform", job.Platform},
		{"url", job.URL},
	}

	var issues []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			issues = append(issues, "Missing required field: "+f.name)
		}
	}
	return issues
}

func (v *Validator) contentIssues(job domain.Job) []string {
	var issues []string

	if titleLen := len([]rune(job.Title)); titleLen < 3 {
		issues = append(issues, "Title too short")
	} else if titleLen > 200 {
		issues = append(issues, "Title suspiciously long")
	}

	if len([]rune(job.Company)) < 2 {
		issues = append(issues, "Company name too short")
	} else if placeholderCompanies[strings.ToLower(job.Company)] {
		issues = append(issues, "Invalid company name")
	}

	if ok, issue := validURL(job.URL); !ok {
		issues = append(issues, issue)
	}

	text := strings.ToLower(job.Title + " " + job.Company + " " + job.Description)
	for _, re := range suspiciousPatterns {
		if re.MatchString(text) {
			issues = append(issues, fmt.Sprintf("Suspicious pattern detected: %s", re))
		}
	}

	if len([]rune(job.Description)) < 20 {
		issues = append(issues, "Description too short")
	}

	if job.Platform == "Mock Data" {
		issues = append(issues, "Flagged as mock data")
	}

	return issues
}

func validURL(raw string) (bool, string) {
	if raw == "" || raw == "#" {
		return false, "Invalid or placeholder URL"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false, "Malformed URL"
	}
	if u.Scheme == "" || u.Host == "" {
		return false, "Malformed URL"
	}

	host := strings.ToLower(u.Host)
	for _, d := range fakeDomains {
		if strings.Contains(host, d) {
			return false, "Suspicious domain"
		}
	}
	return true, ""
}

// Stats returns a copy of the running tally.
func (v *Validator) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// ResetStats clears the tally, e.g. between aggregation runs.
func (v *Validator) ResetStats() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats = Stats{}
}
