package remoteok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobmatch-engine/internal/scrape/types"
)

const feed = `[
  {"legal": "API terms apply"},
  {
    "position": "Senior Python Developer",
    "company": "Acme Inc.",
    "location": "Worldwide",
    "description": "<p>Build Python services with Django and PostgreSQL. Apply now!</p>",
    "tags": ["python", "django"],
    "url": "https://remoteok.com/remote-jobs/100",
    "date": "2024-05-01T00:00:00+00:00",
    "salary_min": 70000,
    "salary_max": 110000
  },
  {
    "position": "Head Chef",
    "company": "Bistro",
    "location": "",
    "description": "Cook things.",
    "tags": ["cooking"],
    "url": "https://remoteok.com/remote-jobs/101"
  }
]`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing user agent")
		}
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	jobs, err := a.Search(context.Background(), types.Query{
		Raw: "python", Keywords: []string{"python"}, Limit: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Senior Python Developer" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Company != "Acme" {
		t.Errorf("company = %q", j.Company)
	}
	if j.Platform != "RemoteOK" || j.JobType != "Remote" {
		t.Errorf("platform=%q type=%q", j.Platform, j.JobType)
	}
	if j.Salary != "$70000-$110000" {
		t.Errorf("salary = %q", j.Salary)
	}
	if j.Description == "" || j.Description[0] == '<' {
		t.Errorf("description not stripped: %q", j.Description)
	}
	if len(j.Skills) == 0 || j.Skills[0] != "python" {
		t.Errorf("skills = %v", j.Skills)
	}
}

func TestSearchSkipsMalformedListing(t *testing.T) {
	body := `[{"legal":"x"}, "not an object", {
	  "position": "Go Developer", "company": "C", "location": "",
	  "description": "Go services.", "url": "https://remoteok.com/1"
	}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	jobs, err := a.Search(context.Background(), types.Query{Keywords: []string{"go"}, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Go Developer" {
		t.Fatalf("jobs = %+v", jobs)
	}
}

func TestSearchLegalNoticeOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"legal":"x"}]`))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	jobs, err := a.Search(context.Background(), types.Query{Keywords: []string{"go"}, Limit: 10})
	if err != nil || jobs != nil {
		t.Fatalf("jobs=%v err=%v", jobs, err)
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	if _, err := a.Search(context.Background(), types.Query{Keywords: []string{"go"}, Limit: 10}); err == nil {
		t.Fatal("want error")
	}
}

func TestSalaryRange(t *testing.T) {
	if got := salaryRange(0, 90000); got != "Not specified" {
		t.Fatalf("got %q", got)
	}
	if got := salaryRange(60000, 90000); got != "$60000-$90000" {
		t.Fatalf("got %q", got)
	}
}
