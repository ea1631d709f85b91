package store

import (
	"context"
	"encoding/json"
	"time"

	"jobmatch-engine/internal/rank"
)

// Search is one persisted aggregation request.
type Search struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"` // form/chat/cv
	RawQuery       string    `json:"raw_query"`
	KeywordSummary string    `json:"keyword_summary"`
	RunID          string    `json:"run_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaveSearch records one aggregation request and returns its id.
func (d *DB) SaveSearch(ctx context.Context, userID int64, searchType, rawQuery, keywordSummary, runID string) (int64, error) {
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO searches(user_id, search_type, raw_query, keyword_summary, run_id, created_at)
VALUES(?,?,?,?,?,?);`,
		userID, searchType, rawQuery, keywordSummary, runID,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SaveJobResults persists the ranked records of one search in rank order.
func (d *DB) SaveJobResults(ctx context.Context, searchID int64, matches []rank.Match) error {
	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO job_results(search_id, position, title, company, location, description,
                        skills, platform, url, posted_date, salary, job_type, score)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range matches {
		skillsB, _ := json.Marshal(m.Job.Skills)
		if _, err := stmt.ExecContext(ctx,
			searchID, i+1,
			m.Job.Title, m.Job.Company, m.Job.Location, m.Job.Description,
			string(skillsB), m.Job.Platform, m.Job.URL,
			m.Job.PostedDate, m.Job.Salary, m.Job.JobType, m.Score,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListSearches returns a user's searches, newest first.
func (d *DB) ListSearches(ctx context.Context, userID int64) ([]Search, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, user_id, search_type, raw_query, keyword_summary, run_id, created_at
FROM searches
WHERE user_id = ?
ORDER BY created_at DESC, id DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Search
	for rows.Next() {
		var s Search
		var createdAt string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Type, &s.RawQuery, &s.KeywordSummary, &s.RunID, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

// SearchResults returns one search's records in rank order.
func (d *DB) SearchResults(ctx context.Context, searchID int64) ([]rank.Match, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT position, title, company, location, description, skills, platform, url,
       posted_date, salary, job_type, score
FROM job_results
WHERE search_id = ?
ORDER BY position;`, searchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rank.Match
	for rows.Next() {
		var m rank.Match
		var skillsJSON string
		if err := rows.Scan(&m.Job.ID, &m.Job.Title, &m.Job.Company, &m.Job.Location,
			&m.Job.Description, &skillsJSON, &m.Job.Platform, &m.Job.URL,
			&m.Job.PostedDate, &m.Job.Salary, &m.Job.JobType, &m.Score); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(skillsJSON), &m.Job.Skills)
		out = append(out, m)
	}
	return out, rows.Err()
}
