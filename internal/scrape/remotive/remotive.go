package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
)

const (
	platform       = "Remotive"
	defaultBaseURL = "https://remotive.com"
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	MaxDescription int
	MaxSkills      int
}

// Adapter reads the Remotive remote-jobs API.
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
	Jobs []listing `json:"jobs"`
}

type listing struct {
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	URL             string `json:"url"`
	Category        string `json:"category"`
	JobType         string `json:"job_type"`
	PublicationDate string `json:"publication_date"`
	Salary          string `json:"salary"`
	Description     string `json:"description"`
}

func (a *Adapter) Search(ctx context.Context, q types.Query) ([]domain.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/remote-jobs", nil)
	if err != nil {
		return nil, fmt.Errorf("remotive build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remotive get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("remotive status %d", res.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remotive decode: %w", err)
	}

	var out []domain.Job
	for _, l := range payload.Jobs {
		if len(out) >= q.Limit {
			break
		}
		if !q.MatchesAny(l.Title + " " + l.Description + " " + l.Category) {
			continue
		}

		jobType := l.JobType
		if jobType == "" {
			jobType = "Full-time"
		}
		category := l.Category
		if category == "" {
			category = "General"
		}

		out = append(out, domain.Job{
			Title:       l.Title,
			Company:     util.CleanCompany(l.CompanyName),
			Location:    "Remote",
			Description: util.CleanDescription(l.Description, a.maxDesc),
			Skills: util.MergeSkills(a.maxSkls,
				[]string{category, jobType},
				util.ExtractSkills(l.Description, a.maxSkls)),
			Platform:   platform,
			URL:        l.URL,
			PostedDate: orNA(l.PublicationDate),
			Salary:     orNotSpecified(l.Salary),
			JobType:    jobType,
		})
	}
	return out, nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
