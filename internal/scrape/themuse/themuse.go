package themuse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobmatch-engine/internal/domain"
	"jobmatch-engine/internal/scrape/types"
	"jobmatch-engine/internal/scrape/util"
)

const (
	platform       = "The Muse"
	defaultBaseURL = "https://www.themuse.com"
)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	MaxDescription int
	MaxSkills      int
}

// Adapter reads The Muse public jobs API.
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
	Results []listing `json:"results"`
}

type listing struct {
	Name    string `json:"name"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	Locations []struct {
		Name string `json:"name"`
	} `json:"locations"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Contents        string `json:"contents"`
	PublicationDate string `json:"publication_date"`
	Refs            struct {
		LandingPage string `json:"landing_page"`
	} `json:"refs"`
}

func (a *Adapter) Search(ctx context.Context, q types.Query) ([]domain.Job, error) {
	params := url.Values{}
	params.Set("page", "0")
	params.Set("descending", "true")
	if q.Location != "" {
		params.Set("location", q.Location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		a.baseURL+"/api/public/jobs?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("themuse build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("themuse get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("themuse status %d", res.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("themuse decode: %w", err)
	}

	var out []domain.Job
	for _, l := range payload.Results {
		if len(out) >= q.Limit {
			break
		}

		var categories []string
		for _, c := range l.Categories {
			categories = append(categories, c.Name)
		}
		if !q.MatchesAny(l.Name + " " + l.Contents + " " + strings.Join(categories, " ")) {
			continue
		}

		var locations []string
		for _, loc := range l.Locations {
			if loc.Name != "" {
				locations = append(locations, loc.Name)
			}
		}
		location := "Unknown"
		if len(locations) > 0 {
			location = strings.Join(locations, ", ")
		}

		out = append(out, domain.Job{
			Title:       l.Name,
			Company:     util.CleanCompany(l.Company.Name),
			Location:    util.CleanLocation(location),
			Description: util.CleanDescription(l.Contents, a.maxDesc),
			Skills:      util.MergeSkills(a.maxSkls, categories, util.ExtractSkills(l.Contents, a.maxSkls)),
			Platform:    platform,
			URL:         l.Refs.LandingPage,
			PostedDate:  orNA(l.PublicationDate),
			Salary:      "Not specified",
			JobType:     "Full-time",
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
