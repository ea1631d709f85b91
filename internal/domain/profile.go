package domain

// Profile describes what the user is looking for. Either the structured
// fields (Skills/JobTitle, from the form or a parsed CV) or FreeText (chat
// input) is set; structured fields win when both are present.
type Profile struct {
	Skills   []string `json:"skills"`
	JobTitle string   `json:"job_title"`
	FreeText string   `json:"free_text"`
}
