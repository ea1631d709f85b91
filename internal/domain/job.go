package domain

// Job is the canonical record every adapter normalizes into. Fields mirror
// the JSON shape the web client consumes.
type Job struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Platform    string   `json:"platform"`
	URL         string   `json:"url"`
	PostedDate  string   `json:"posted_date"`
	Salary      string   `json:"salary"`
	JobType     string   `json:"job_type"`
}
