package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
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
	platform       = "Adzuna"
	defaultBaseURL = "https://api.adzuna.com"
	maxPerPage     = 50
)

type Config struct {
	AppID          string
	AppKey         string
	Country        string // optional fixed country code; otherwise derived per query
	BaseURL        string
	HTTPClient     *http.Client
	MaxDescription int
	MaxSkills      int
}

// Adapter queries the keyed Adzuna search API. Construction fails closed
// when credentials are absent.
type Adapter struct {
	appID   string
	appKey  string
	country string
	baseURL string
	hc      *http.Client
	maxDesc int
	maxSkls int
}

func New(cfg Config) (*Adapter, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna: app_id and app_key are required")
	}

	a := &Adapter{
		appID:   cfg.AppID,
		appKey:  cfg.AppKey,
		country: cfg.Country,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		hc:      cfg.HTTPClient,
		maxDesc: cfg.MaxDescription,
		maxSkls: cfg.MaxSkills,
	}
	if a.baseURL == "" {
		a.baseURL = defaultBaseURL
	}
	if a.hc == nil {
		a.hc = &http.Client{Timeout: 10 * time.Second}
	}
	if a.maxDesc <= 0 {
		a.maxDesc = 1000
	}
	if a.maxSkls <= 0 {
		a.maxSkls = 15
	}
	return a, nil
}

func (a *Adapter) Name() string { return platform }

// CountryForLocation maps a free-text location hint onto an Adzuna country
// code. Egypt/Cairo maps to "za", the nearest supported market, which
// almost certainly returns zero Egyptian listings.
func CountryForLocation(location string) string {
	l := strings.ToLower(location)
	switch {
	case strings.Contains(l, "uk"), strings.Contains(l, "london"):
		return "gb"
	case strings.Contains(l, "canada"):
		return "ca"
	case strings.Contains(l, "egypt"), strings.Contains(l, "cairo"):
		return "za"
	default:
		return "us"
	}
}

type response struct {
	Results []listing `json:"results"`
}

type listing struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string   `json:"display_name"`
		Area        []string `json:"area"`
	} `json:"location"`
	Category struct {
		Label string `json:"label"`
	} `json:"category"`
	Description  string  `json:"description"`
	RedirectURL  string  `json:"redirect_url"`
	SalaryMin    float64 `json:"salary_min"`
	SalaryMax    float64 `json:"salary_max"`
	ContractType string  `json:"contract_type"`
	Created      string  `json:"created"`
}

func (a *Adapter) Search(ctx context.Context, q types.Query) ([]domain.Job, error) {
	country := a.country
	if country == "" {
		country = CountryForLocation(q.Location)
	}

	perPage := q.Limit
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("what", q.Raw)
	params.Set("results_per_page", strconv.Itoa(perPage))
	params.Set("sort_by", "relevance")

	endpoint := fmt.Sprintf("%s/v1/api/jobs/%s/search/1?%s", a.baseURL, country, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adzuna get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("adzuna status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload response
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("adzuna decode: %w", err)
	}

	var out []domain.Job
	for _, l := range payload.Results {
		if len(out) >= q.Limit {
			break
		}

		jobType := l.ContractType
		if jobType == "" {
			jobType = "Full-time"
		}

		out = append(out, domain.Job{
			Title:       l.Title,
			Company:     util.CleanCompany(l.Company.DisplayName),
			Location:    util.CleanLocation(displayLocation(l)),
			Description: util.CleanDescription(l.Description, a.maxDesc),
			Skills: util.MergeSkills(a.maxSkls,
				[]string{l.Category.Label},
				util.ExtractSkills(l.Description, a.maxSkls)),
			Platform:   platform,
			URL:        l.RedirectURL,
			PostedDate: orNA(l.Created),
			Salary:     salaryRange(l.SalaryMin, l.SalaryMax),
			JobType:    jobType,
		})
	}
	return out, nil
}

func displayLocation(l listing) string {
	if l.Location.DisplayName != "" {
		return l.Location.DisplayName
	}
	if len(l.Location.Area) > 0 {
		return strings.Join(l.Location.Area, ", ")
	}
	return "Remote"
}

func salaryRange(min, max float64) string {
	switch {
	case min > 0 && max > 0:
		return util.Money(min) + " - " + util.Money(max)
	case min > 0:
		return util.Money(min) + "+"
	case max > 0:
		return "Up to " + util.Money(max)
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
