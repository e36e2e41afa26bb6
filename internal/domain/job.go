package domain

import "time"

// Job is a normalized listing from any source. URL is the natural key:
// the store keeps at most one row per URL and re-submission is a no-op.
type Job struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	URL             string `json:"url"`
	DatePosted      string `json:"date_posted"` // ISO date string, best-effort
	Source          string `json:"source"`
	Salary          string `json:"salary"`     // display string, may be empty
	SalaryMin       string `json:"salary_min"` // raw source value, may be empty
	SalaryMax       string `json:"salary_max"`
	EmploymentType  string `json:"employment_type"`
	IsRemote        bool   `json:"is_remote"`
	ExperienceLevel string `json:"experience_level"`
	ApplyDeadline   string `json:"apply_deadline"`
	Description     string `json:"description"`
	Score           int    `json:"score"` // may be negative
	CreatedAt       string `json:"created_at,omitempty"`

	// Joined application fields, populated by store reads.
	AppStatus   string     `json:"app_status,omitempty"`
	AppNotes    string     `json:"app_notes,omitempty"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	FollowedUp  *time.Time `json:"followed_up,omitempty"`
	InterviewAt *time.Time `json:"interview_at,omitempty"`
}

// ApplicationEntry is the joined Job+Application projection used by the
// tracking views. One application per job, created lazily on the first
// status change and never deleted.
type ApplicationEntry struct {
	JobID          int64      `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	URL            string     `json:"url"`
	Score          int        `json:"score"`
	DatePosted     string     `json:"date_posted"`
	EmploymentType string     `json:"employment_type"`
	IsRemote       bool       `json:"is_remote"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes"`
	AppliedAt      *time.Time `json:"applied_at"`
	FollowedUp     *time.Time `json:"followed_up"`
	InterviewAt    *time.Time `json:"interview_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Stats summarizes the store: total jobs plus a count per application status.
type Stats struct {
	TotalJobs int            `json:"total_jobs_found"`
	ByStatus  map[string]int `json:"by_status"`
}
