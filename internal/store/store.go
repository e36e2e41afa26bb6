// Package store persists jobs and applications in PostgreSQL. Jobs are
// insert-only with URL as the natural key; applications are a lazy one-row-
// per-job upsert driven by status changes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/project-rsd/go-jobagent/internal/domain"
)

// ErrNotFound is returned when a job ID does not exist.
var ErrNotFound = errors.New("job not found")

// ErrInvalidStatus is returned when a status value is not in the enum.
// Nothing is persisted in that case.
var ErrInvalidStatus = errors.New("invalid application status")

// Store wraps the jobs/applications database.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL and ensures the schema exists.
func Open(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS jobs (
			id               BIGSERIAL PRIMARY KEY,
			title            TEXT NOT NULL,
			company          TEXT NOT NULL DEFAULT '',
			location         TEXT DEFAULT '',
			url              TEXT UNIQUE,
			date_posted      TEXT DEFAULT '',
			source           TEXT DEFAULT '',
			salary           TEXT DEFAULT '',
			salary_min       TEXT DEFAULT '',
			salary_max       TEXT DEFAULT '',
			employment_type  TEXT DEFAULT '',
			is_remote        BOOLEAN DEFAULT FALSE,
			experience_level TEXT DEFAULT '',
			apply_deadline   TEXT DEFAULT '',
			description      TEXT DEFAULT '',
			score            INTEGER DEFAULT 0,
			created_at       TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS applications (
			id           BIGSERIAL PRIMARY KEY,
			job_id       BIGINT NOT NULL UNIQUE REFERENCES jobs(id),
			status       TEXT NOT NULL DEFAULT 'saved',
			notes        TEXT DEFAULT '',
			applied_at   TIMESTAMP WITH TIME ZONE,
			followed_up  TIMESTAMP WITH TIME ZONE,
			interview_at TIMESTAMP WITH TIME ZONE,
			updated_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`
	_, err := s.db.Exec(query)
	return err
}

// UpsertJobs inserts jobs in one transaction, skipping URLs already present.
// Returns the newly inserted jobs with their assigned IDs. A job that fails
// to insert is logged and skipped, not fatal to the batch.
func (s *Store) UpsertJobs(ctx context.Context, jobs []domain.Job) ([]domain.Job, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO jobs (
			title, company, location, url, date_posted, source,
			salary, salary_min, salary_max,
			employment_type, is_remote, experience_level, apply_deadline,
			description, score
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13,
			$14, $15
		)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	var inserted []domain.Job
	for _, job := range jobs {
		var id int64
		err := stmt.QueryRowContext(ctx,
			job.Title, job.Company, job.Location, job.URL, job.DatePosted, job.Source,
			job.Salary, job.SalaryMin, job.SalaryMax,
			job.EmploymentType, job.IsRemote, job.ExperienceLevel, job.ApplyDeadline,
			job.Description, job.Score,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue // URL already stored
		}
		if err != nil {
			log.Printf("Error saving job %q: %v", job.URL, err)
			continue
		}
		job.ID = id
		inserted = append(inserted, job)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}

const jobColumns = `
	j.id, j.title, j.company, j.location, j.url, j.date_posted, j.source,
	j.salary, j.salary_min, j.salary_max,
	j.employment_type, j.is_remote, j.experience_level, j.apply_deadline,
	j.description, j.score, to_char(j.created_at, 'YYYY-MM-DD HH24:MI:SS')
`

func scanJob(row interface{ Scan(...any) error }, extras ...any) (domain.Job, error) {
	var job domain.Job
	dest := []any{
		&job.ID, &job.Title, &job.Company, &job.Location, &job.URL,
		&job.DatePosted, &job.Source,
		&job.Salary, &job.SalaryMin, &job.SalaryMax,
		&job.EmploymentType, &job.IsRemote, &job.ExperienceLevel, &job.ApplyDeadline,
		&job.Description, &job.Score, &job.CreatedAt,
	}
	dest = append(dest, extras...)
	err := row.Scan(dest...)
	return job, err
}

// GetJobs returns stored jobs with score >= minScore, best first, joined with
// any application status and notes.
func (s *Store) GetJobs(ctx context.Context, limit, minScore int) ([]domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `,
			COALESCE(a.status, ''), COALESCE(a.notes, '')
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id
		WHERE j.score >= $1
		ORDER BY j.score DESC, j.created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var status, notes string
		job, err := scanJob(rows, &status, &notes)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		job.AppStatus = status
		job.AppNotes = notes
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// GetJob returns one job with full application detail, or ErrNotFound.
func (s *Store) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `,
			COALESCE(a.status, ''), COALESCE(a.notes, ''),
			a.applied_at, a.followed_up, a.interview_at
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id
		WHERE j.id = $1
	`
	var status, notes string
	var applied, followed, interview *time.Time
	job, err := scanJob(s.db.QueryRowContext(ctx, query, id),
		&status, &notes, &applied, &followed, &interview)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query job %d: %w", id, err)
	}
	job.AppStatus = status
	job.AppNotes = notes
	job.AppliedAt = applied
	job.FollowedUp = followed
	job.InterviewAt = interview
	return &job, nil
}

// SearchJobs matches a keyword against title, company and description,
// best-scored first.
func (s *Store) SearchJobs(ctx context.Context, keyword string) ([]domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `,
			COALESCE(a.status, '')
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id
		WHERE j.title ILIKE $1 OR j.company ILIKE $1 OR j.description ILIKE $1
		ORDER BY j.score DESC
	`
	rows, err := s.db.QueryContext(ctx, query, "%"+keyword+"%")
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var status string
		job, err := scanJob(rows, &status)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		job.AppStatus = status
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// SetStatus records an application status for a job, creating the application
// row on first use. Notes only overwrite when non-empty. Reaching "applied",
// "followed_up" or "interview" stamps the matching timestamp on every set,
// not just the first: re-applying refreshes the applied date. That mirrors
// the tracker this replaces; see DESIGN.md before changing it.
func (s *Store) SetStatus(ctx context.Context, jobID int64, status, notes string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if _, err := s.GetJob(ctx, jobID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO applications (job_id, status, notes, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (job_id) DO UPDATE SET
			status = EXCLUDED.status,
			notes = CASE WHEN EXCLUDED.notes <> '' THEN EXCLUDED.notes ELSE applications.notes END,
			updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, upsert, jobID, status, notes); err != nil {
		return fmt.Errorf("upsert application: %w", err)
	}

	var stampCol string
	switch status {
	case domain.StatusApplied:
		stampCol = "applied_at"
	case domain.StatusFollowedUp:
		stampCol = "followed_up"
	case domain.StatusInterview:
		stampCol = "interview_at"
	}
	if stampCol != "" {
		stamp := fmt.Sprintf("UPDATE applications SET %s = NOW() WHERE job_id = $1", stampCol)
		if _, err := tx.ExecContext(ctx, stamp, jobID); err != nil {
			return fmt.Errorf("stamp %s: %w", stampCol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// AppStatuses returns the application status for each of the given job IDs.
// Jobs without an application row are absent from the map.
func (s *Store) AppStatuses(ctx context.Context, ids []int64) (map[int64]string, error) {
	statuses := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return statuses, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT job_id, status FROM applications WHERE job_id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses[id] = status
	}
	return statuses, rows.Err()
}

// GetApplications returns tracked applications joined with their jobs, most
// recently updated first, optionally filtered by exact status.
func (s *Store) GetApplications(ctx context.Context, status string) ([]domain.ApplicationEntry, error) {
	query := `
		SELECT j.id, j.title, j.company, j.location, j.url, j.score,
			j.date_posted, j.employment_type, j.is_remote,
			a.status, COALESCE(a.notes, ''),
			a.applied_at, a.followed_up, a.interview_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
	`
	args := []any{}
	if status != "" {
		query += " WHERE a.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY a.updated_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var entries []domain.ApplicationEntry
	for rows.Next() {
		var e domain.ApplicationEntry
		err := rows.Scan(
			&e.JobID, &e.Title, &e.Company, &e.Location, &e.URL, &e.Score,
			&e.DatePosted, &e.EmploymentType, &e.IsRemote,
			&e.Status, &e.Notes,
			&e.AppliedAt, &e.FollowedUp, &e.InterviewAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetStats returns the total job count plus a count per application status
// present in the store.
func (s *Store) GetStats(ctx context.Context) (*domain.Stats, error) {
	stats := &domain.Stats{ByStatus: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs").Scan(&stats.TotalJobs); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM applications GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.ByStatus[status] = count
	}
	return stats, rows.Err()
}

// UpdateJobDetails fills in the deadline and experience level on an existing
// row, for jobs saved before the extractors ran. Empty values leave the
// column untouched.
func (s *Store) UpdateJobDetails(ctx context.Context, id int64, deadline, experience string) error {
	query := `
		UPDATE jobs SET
			apply_deadline = CASE WHEN $2 <> '' THEN $2 ELSE apply_deadline END,
			experience_level = CASE WHEN $3 <> '' THEN $3 ELSE experience_level END
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, id, deadline, experience)
	if err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
