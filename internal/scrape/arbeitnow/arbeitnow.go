package arbeitnow

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
	platform       = "Arbeitnow"
	defaultBaseURL = "https://www.arbeitnow.com"
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	MaxDescription int
	MaxSkills      int
}

// Adapter reads the Arbeitnow job-board API.
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
	Data []listing `json:"data"`
}

type listing struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
	Description string   `json:"description"`
	CreatedAt   int64    `json:"created_at"`
}

func (a *Adapter) Search(ctx context.Context, q types.Query) ([]domain.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/job-board-api", nil)
	if err != nil {
		return nil, fmt.Errorf("arbeitnow build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arbeitnow get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("arbeitnow status %d", res.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("arbeitnow decode: %w", err)
	}

	var out []domain.Job
	for _, l := range payload.Data {
		if len(out) >= q.Limit {
			break
		}
		if !q.MatchesAny(l.Title + " " + l.Description + " " + strings.Join(l.Tags, " ")) {
			continue
		}

		jobType := "Full-time"
		if len(l.JobTypes) > 0 && l.JobTypes[0] != "" {
			jobType = l.JobTypes[0]
		}

		out = append(out, domain.Job{
			Title:       l.Title,
			Company:     util.CleanCompany(l.CompanyName),
			Location:    util.CleanLocation(l.Location),
			Description: util.CleanDescription(l.Description, a.maxDesc),
			Skills:      util.MergeSkills(a.maxSkls, l.Tags, util.ExtractSkills(l.Description, a.maxSkls)),
			Platform:    platform,
			URL:         l.URL,
			PostedDate:  postedDate(l.CreatedAt),
			Salary:      "Not specified",
			JobType:     jobType,
		})
	}
	return out, nil
}

func postedDate(createdAt int64) string {
	if createdAt <= 0 {
		return "N/A"
	}
	return time.Unix(createdAt, 0).UTC().Format("2006-01-02")
}
