package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobmatch-engine/internal/scrape/types"
)

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(Config{AppID: "id"}); err == nil {
		t.Fatal("want error without app key")
	}
	if _, err := New(Config{AppKey: "key"}); err == nil {
		t.Fatal("want error without app id")
	}
	if _, err := New(Config{AppID: "id", AppKey: "key"}); err != nil {
		t.Fatal(err)
	}
}

func TestCountryForLocation(t *testing.T) {
	cases := []struct {
		location, want string
	}{
		{"London, UK", "gb"},
		{"Toronto, Canada", "ca"},
		{"Cairo, Egypt", "za"},
		{"Egypt", "za"},
		{"New York", "us"},
		{"", "us"},
	}
	for _, c := range cases {
		if got := CountryForLocation(c.location); got != c.want {
			t.Errorf("CountryForLocation(%q) = %q, want %q", c.location, got, c.want)
		}
	}
}

const payload = `{
  "results": [
    {
      "title": "Python Developer",
      "company": {"display_name": "Acme Ltd."},
      "location": {"display_name": "Johannesburg, Gauteng"},
      "category": {"label": "IT Jobs"},
      "description": "Write Python and SQL for our data platform.",
      "redirect_url": "https://www.adzuna.com/details/1",
      "salary_min": 50000,
      "salary_max": 80000,
      "contract_type": "",
      "created": "2024-05-01T00:00:00Z"
    },
    {
      "title": "Area Only",
      "company": {"display_name": "Globex"},
      "location": {"area": ["South Africa", "Gauteng"]},
      "category": {"label": "IT Jobs"},
      "description": "Another role with enough description text here.",
      "redirect_url": "https://www.adzuna.com/details/2"
    }
  ]
}`

func TestSearch(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a, err := New(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}

	jobs, err := a.Search(context.Background(), types.Query{
		Raw: "python developer", Location: "Cairo, Egypt", Limit: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/v1/api/jobs/za/search/1" {
		t.Errorf("path = %q", gotPath)
	}
	q, _ := http.NewRequest(http.MethodGet, "http://x/?"+gotQuery, nil)
	vals := q.URL.Query()
	if vals.Get("app_id") != "id" || vals.Get("app_key") != "key" {
		t.Errorf("credentials missing from query: %q", gotQuery)
	}
	if vals.Get("what") != "python developer" || vals.Get("results_per_page") != "10" {
		t.Errorf("query = %q", gotQuery)
	}

	if len(jobs) != 2 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	j := jobs[0]
	if j.Company != "Acme" {
		t.Errorf("company = %q", j.Company)
	}
	if j.Salary != "$50,000 - $80,000" {
		t.Errorf("salary = %q", j.Salary)
	}
	if j.JobType != "Full-time" {
		t.Errorf("job type = %q", j.JobType)
	}
	if len(j.Skills) == 0 || j.Skills[0] != "IT Jobs" {
		t.Errorf("skills = %v", j.Skills)
	}
	if jobs[1].Location != "South Africa, Gauteng" {
		t.Errorf("area fallback location = %q", jobs[1].Location)
	}
	if jobs[1].Salary != "Not specified" || jobs[1].PostedDate != "N/A" {
		t.Errorf("defaults: salary=%q posted=%q", jobs[1].Salary, jobs[1].PostedDate)
	}
}

func TestSearchFixedCountry(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	a, err := New(Config{AppID: "id", AppKey: "key", Country: "gb", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Search(context.Background(), types.Query{Raw: "dev", Location: "New York", Limit: 5}); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/v1/api/jobs/gb/search/1" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestSearchAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "AUTH_FAIL", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a, err := New(Config{AppID: "id", AppKey: "bad", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Search(context.Background(), types.Query{Raw: "dev", Limit: 5}); err == nil {
		t.Fatal("want error")
	}
}

func TestSalaryRange(t *testing.T) {
	cases := []struct {
		min, max float64
		want     string
	}{
		{50000, 80000, "$50,000 - $80,000"},
		{50000, 0, "$50,000+"},
		{0, 80000, "Up to $80,000"},
		{0, 0, "Not specified"},
	}
	for _, c := range cases {
		if got := salaryRange(c.min, c.max); got != c.want {
			t.Errorf("salaryRange(%v, %v) = %q, want %q", c.min, c.max, got, c.want)
		}
	}
}
