package remoteok

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
	platform       = "RemoteOK"
	defaultBaseURL = "https://remoteok.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// The feed is large; only this many listings are scanned per call.
	scanWindow = 50
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	MaxDescription int
	MaxSkills      int
}

// Adapter reads the RemoteOK public JSON feed.
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

type listing struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Date        string   `json:"date"`
	SalaryMin   int      `json:"salary_min"`
	SalaryMax   int      `json:"salary_max"`
}

func (a *Adapter) Search(ctx context.Context, q types.Query) ([]domain.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api", nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("remoteok status %d", res.StatusCode)
	}

	// First array element is a legal notice, not a job.
	var raw []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("remoteok decode: %w", err)
	}
	if len(raw) <= 1 {
		return nil, nil
	}

	listings := raw[1:]
	if len(listings) > scanWindow {
		listings = listings[:scanWindow]
	}

	var out []domain.Job
	for _, item := range listings {
		if len(out) >= q.Limit {
			break
		}
		var l listing
		if err := json.Unmarshal(item, &l); err != nil {
			continue
		}
		if !q.MatchesAny(l.Position + " " + l.Description + " " + strings.Join(l.Tags, " ")) {
			continue
		}

		out = append(out, domain.Job{
			Title:       l.Position,
			Company:     util.CleanCompany(l.Company),
			Location:    util.CleanLocation(l.Location),
			Description: util.CleanDescription(l.Description, a.maxDesc),
			Skills:      util.MergeSkills(a.maxSkls, l.Tags, util.ExtractSkills(l.Description, a.maxSkls)),
			Platform:    platform,
			URL:         l.URL,
			PostedDate:  orNA(l.Date),
			Salary:      salaryRange(l.SalaryMin, l.SalaryMax),
			JobType:     "Remote",
		})
	}
	return out, nil
}

func salaryRange(min, max int) string {
	if min <= 0 {
		return "Not specified"
	}
	return fmt.Sprintf("$%d-$%d", min, max)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
