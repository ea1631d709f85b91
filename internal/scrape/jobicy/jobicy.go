package jobicy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
)

const (
	platform       = "Jobicy"
	defaultBaseURL = "https://jobicy.com"
	maxCount       = 50
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	MaxDescription int
	MaxSkills      int
}

// Adapter reads the Jobicy remote-jobs API. Jobicy matches on tags
// server-side; the raw query doubles as the tag filter.
type Adapter struct {
	baseURL string
	hc      *http.Client
	maxDesc int
	maxSkls int
}

func New(cfg Config) *Adapter {
	a := &Adapter{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		hc:      cfg.HTTPClient,
		maxDesc: cfg.MaxDescription,
		maxSkls: cfg.MaxSkills,
	}
	if a.baseURL == "" {
		a.baseURL = defaultBaseURL
	}
	if a.hc == nil {
		a.hc = &http.Client{Timeout: 15 * time.Second}
	}
	if a.maxDesc <= 0 {
		a.maxDesc = 1000
	}
	if a.maxSkls <= 0 {
		a.maxSkls = 15
	}
	return a
}

func (a *Adapter) Name() string { return platform }

type response struct {
	Success bool      `json:"success"`
	Jobs    []listing `json:"jobs"`
}

type listing struct {
	JobTitle       string   `json:"jobTitle"`
	CompanyName    string   `json:"companyName"`
	JobGeo         string   `json:"jobGeo"`
	JobIndustry    []string `json:"jobIndustry"`
	JobDescription string   `json:"jobDescription"`
	URL            string   `json:"url"`
	PubDate        string   `json:"pubDate"`
	SalaryMin      float64  `json:"annualSalaryMin"`
	SalaryMax      float64  `json:"annualSalaryMax"`
}

func (a *Adapter) Search(ctx context.Context, q types.Query) ([]domain.Job, error) {
	params := url.Values{}
	count := q.Limit
	if count > maxCount {
		count = maxCount
	}
	params.Set("count", strconv.Itoa(count))
	if q.Raw != "" {
		params.Set("tag", q.Raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/api/v2/remote-jobs?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("jobicy build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobicy get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("jobicy status %d", res.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("jobicy decode: %w", err)
	}
	if !payload.Success {
		return nil, nil
	}

	var out []domain.Job
	for _, l := range payload.Jobs {
		if len(out) >= q.Limit {
			break
		}
		// Tag filtering upstream is loose; double-check locally.
		if !q.MatchesAny(l.JobTitle + " " + l.JobDescription) {
			continue
		}

		geo := l.JobGeo
		if geo == "" {
			geo = "Anywhere"
		}

		out = append(out, domain.Job{
			Title:       l.JobTitle,
			Company:     util.CleanCompany(l.CompanyName),
			Location:    util.CleanLocation(fmt.Sprintf("Remote (%s)", geo)),
			Description: util.CleanDescription(l.JobDescription, a.maxDesc),
			Skills: util.MergeSkills(a.maxSkls,
				l.JobIndustry,
				util.ExtractSkills(l.JobDescription, a.maxSkls)),
			Platform:   platform,
			URL:        l.URL,
			PostedDate: orNA(l.PubDate),
			Salary:     annualSalary(l.SalaryMin, l.SalaryMax),
			JobType:    "Remote",
		})
	}
	return out, nil
}

func annualSalary(min, max float64) string {
	switch {
	case min > 0 && max > 0:
		return util.Money(min) + " - " + util.Money(max)
	case min > 0:
		return util.Money(min) + "+"
	default:
		return "Not specified"
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
