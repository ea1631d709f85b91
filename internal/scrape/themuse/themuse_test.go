package themuse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobmatch-engine/internal/scrape/types"
)

const payload = `{
  "results": [
    {
      "name": "Software Engineer, Python",
      "company": {"name": "Acme Corp."},
      "locations": [{"name": "New York, NY"}, {"name": "Remote"}],
      "categories": [{"name": "Engineering"}],
      "contents": "<p>Write Python services backed by PostgreSQL.</p>",
      "publication_date": "2024-05-01T12:00:00Z",
      "refs": {"landing_page": "https://www.themuse.com/jobs/acme/1"}
    },
    {
      "name": "Recruiter",
      "company": {"name": "Globex"},
      "locations": [],
      "categories": [{"name": "HR"}],
      "contents": "Hire people.",
      "publication_date": "",
      "refs": {"landing_page": "https://www.themuse.com/jobs/globex/2"}
    }
  ]
}`

func TestSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public/jobs" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	jobs, err := a.Search(context.Background(), types.Query{
		Keywords: []string{"python"}, Location: "New York", Limit: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodGet, "http://x/?"+gotQuery, nil)
	vals := req.URL.Query()
	if vals.Get("page") != "0" || vals.Get("location") != "New York" {
		t.Errorf("query = %q", gotQuery)
	}

	if len(jobs) != 1 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	j := jobs[0]
	if j.Company != "Acme" {
		t.Errorf("company = %q", j.Company)
	}
	if j.Location != "New York, NY, Remote" {
		t.Errorf("location = %q", j.Location)
	}
	if j.Platform != "The Muse" {
		t.Errorf("platform = %q", j.Platform)
	}
	if len(j.Skills) == 0 || j.Skills[0] != "Engineering" {
		t.Errorf("skills = %v", j.Skills)
	}
	if j.Description[0] == '<' {
		t.Errorf("description not stripped: %q", j.Description)
	}
}

func TestSearchNoLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	jobs, err := a.Search(context.Background(), types.Query{Keywords: []string{"recruiter"}, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs", len(jobs))
	}
	if jobs[0].Location != "Unknown" {
		t.Errorf("location = %q", jobs[0].Location)
	}
	if jobs[0].PostedDate != "N/A" {
		t.Errorf("posted = %q", jobs[0].PostedDate)
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	if _, err := a.Search(context.Background(), types.Query{Keywords: []string{"x"}, Limit: 5}); err == nil {
		t.Fatal("want error")
	}
}
