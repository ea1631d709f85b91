package jobicy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobmatch-engine/internal/scrape/types"
)

const payload = `{
  "success": true,
  "jobs": [
    {
      "jobTitle": "Python Engineer",
      "companyName": "Acme",
      "jobGeo": "Europe",
      "jobIndustry": ["Engineering"],
      "jobDescription": "Build Python pipelines with Airflow.",
      "url": "https://jobicy.com/jobs/1",
      "pubDate": "2024-05-01 08:00:00",
      "annualSalaryMin": 60000,
      "annualSalaryMax": 90000
    },
    {
      "jobTitle": "Python Analyst",
      "companyName": "Globex",
      "jobGeo": "",
      "jobIndustry": [],
      "jobDescription": "Python dashboards and reporting.",
      "url": "https://jobicy.com/jobs/2",
      "pubDate": ""
    }
  ]
}`

func TestSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	jobs, err := a.Search(context.Background(), types.Query{
		Raw: "python", Keywords: []string{"python"}, Limit: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodGet, "http://x/?"+gotQuery, nil)
	vals := req.URL.Query()
	if vals.Get("count") != "10" || vals.Get("tag") != "python" {
		t.Errorf("query = %q", gotQuery)
	}

	if len(jobs) != 2 {
		t.Fatalf("got %d jobs", len(jobs))
	}

	j := jobs[0]
	if j.Location != "Remote (Europe)" {
		t.Errorf("location = %q", j.Location)
	}
	if j.Salary != "$60,000 - $90,000" {
		t.Errorf("salary = %q", j.Salary)
	}
	if len(j.Skills) == 0 || j.Skills[0] != "Engineering" {
		t.Errorf("skills = %v", j.Skills)
	}
	if j.JobType != "Remote" {
		t.Errorf("job type = %q", j.JobType)
	}

	second := jobs[1]
	if second.Location != "Remote (Anywhere)" {
		t.Errorf("location = %q", second.Location)
	}
	if second.Salary != "Not specified" || second.PostedDate != "N/A" {
		t.Errorf("defaults: salary=%q posted=%q", second.Salary, second.PostedDate)
	}
}

func TestSearchUnsuccessfulPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "jobs": []}`))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	jobs, err := a.Search(context.Background(), types.Query{Raw: "python", Keywords: []string{"python"}, Limit: 10})
	if err != nil || jobs != nil {
		t.Fatalf("jobs=%v err=%v", jobs, err)
	}
}

func TestSearchCountCap(t *testing.T) {
	var gotCount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCount = r.URL.Query().Get("count")
		w.Write([]byte(`{"success": true, "jobs": []}`))
	}))
	defer srv.Close()

	a := New(Config{BaseURL: srv.URL})
	if _, err := a.Search(context.Background(), types.Query{Raw: "python", Limit: 200}); err != nil {
		t.Fatal(err)
	}
	if gotCount != "50" {
		t.Errorf("count = %q", gotCount)
	}
}

func TestAnnualSalary(t *testing.T) {
	if got := annualSalary(60000, 0); got != "$60,000+" {
		t.Fatalf("got %q", got)
	}
	if got := annualSalary(0, 90000); got != "Not specified" {
		t.Fatalf("got %q", got)
	}
}
