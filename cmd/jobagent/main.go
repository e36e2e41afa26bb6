// Command jobagent is the CLI surface: sweep the boards, browse and search
// saved jobs, track applications and export. Shares the store with the web
// server.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/project-rsd/go-jobagent/internal/common/cleaner"
	"github.com/project-rsd/go-jobagent/internal/config"
	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/extract"
	"github.com/project-rsd/go-jobagent/internal/filter"
	"github.com/project-rsd/go-jobagent/internal/score"
	"github.com/project-rsd/go-jobagent/internal/search"
	"github.com/project-rsd/go-jobagent/internal/source"
	"github.com/project-rsd/go-jobagent/internal/store"
)

const usage = `Usage: jobagent <command> [options]

Commands:
  search          Search job boards for matching positions
  links           Generate direct search URLs for major job boards
  jobs            List saved jobs from the database
  detail <id>     Show full details for a specific job
  apply <id>      Mark a job as applied
  status <id> <status>  Update the status of a job application
  track           View all tracked applications
  update-details  Re-extract deadlines and experience from saved jobs
  stats           View application statistics
  export          Export all saved jobs to a CSV file
`

func main() {
	log.SetFlags(0)

	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	cmd, args := os.Args[1], os.Args[2:]

	// links needs no database
	if cmd == "links" {
		cmdLinks(args)
		return
	}

	st, err := store.Open(cfg.Postgres.ConnectionString)
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	defer st.Close()

	switch cmd {
	case "search":
		cmdSearch(ctx, cfg, st, args)
	case "jobs":
		cmdJobs(ctx, st, args)
	case "detail":
		cmdDetail(ctx, st, args)
	case "apply":
		cmdApply(ctx, st, args)
	case "status":
		cmdStatus(ctx, st, args)
	case "track":
		cmdTrack(ctx, st, args)
	case "update-details":
		cmdUpdateDetails(ctx, st)
	case "stats":
		cmdStats(ctx, st)
	case "export":
		cmdExport(ctx, st, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}

func newSweepService(cfg *config.Config, st *store.Store) *search.Service {
	deps := source.Deps{
		Client:  &http.Client{Timeout: cfg.Search.FetchTimeout},
		Cleaner: cleaner.New(),
		Scorer: &score.Scorer{
			Skills:        config.SkillKeywords,
			Roles:         config.TargetRoles,
			Overqualified: config.OverqualifiedTitleKeywords,
			Penalty:       config.OverqualifiedPenalty,
		},
		MaxResults: cfg.Search.MaxResultsPerSource,
		UserAgent:  cfg.Search.UserAgent,
	}
	titles := filter.NewTitleFilter(
		config.RelevantTitleKeywords,
		config.RelevantTitleWordKeywords,
		config.ExcludedTitleKeywords,
	)
	// CLI sweeps run in the foreground without the Redis cache or the
	// search mirror; the store's URL key still keeps inserts idempotent.
	return search.New(source.Registry(cfg, deps), titles, st, nil, nil, cfg.Search.RequestDelay)
}

func cmdSearch(ctx context.Context, cfg *config.Config, st *store.Store, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	role := fs.String("role", "", "search for a specific role (default: all target roles)")
	fs.Parse(args)

	roles := config.TargetRoles
	if *role != "" {
		roles = []string{*role}
	}

	fmt.Printf("Searching for jobs...\nRoles: %s\n\n", strings.Join(roles, ", "))

	svc := newSweepService(cfg, st)
	found, added, err := svc.Sweep(ctx, roles)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	if found == 0 {
		fmt.Println("No jobs found. Try adding API keys (JSEARCH_API_KEY, ADZUNA_APP_ID/ADZUNA_APP_KEY) for more sources.")
		return
	}

	fmt.Printf("Found %d jobs, %d new.\n\n", found, added)

	jobs, err := st.GetJobs(ctx, 30, 0)
	if err != nil {
		log.Fatalf("List jobs failed: %v", err)
	}
	printJobsTable(jobs)
	fmt.Println("\nUse 'jobagent jobs' to view all saved jobs, 'jobagent apply <id>' to mark one as applied.")
}

func cmdLinks(args []string) {
	fs := flag.NewFlagSet("links", flag.ExitOnError)
	role := fs.String("role", "", "role to search for (default: all target roles)")
	fs.Parse(args)

	roles := config.TargetRoles
	if *role != "" {
		roles = []string{*role}
	}

	for _, r := range roles {
		fmt.Printf("\n%s\n", r)
		for _, entry := range search.GenerateSearchURLs(r) {
			fmt.Printf("  [%s] %s\n", entry.Platform, entry.URL)
		}
	}
}

func cmdJobs(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	keyword := fs.String("search", "", "filter by keyword")
	limit := fs.Int("limit", 50, "max results to show")
	minScore := fs.Int("min-score", 0, "minimum relevance score")
	fs.Parse(args)

	var jobs []domain.Job
	var err error
	if *keyword != "" {
		jobs, err = st.SearchJobs(ctx, *keyword)
		fmt.Printf("Jobs matching %q:\n\n", *keyword)
	} else {
		jobs, err = st.GetJobs(ctx, *limit, *minScore)
		fmt.Printf("Saved jobs (top %d, min score %d):\n\n", *limit, *minScore)
	}
	if err != nil {
		log.Fatalf("List jobs failed: %v", err)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs found. Run 'jobagent search' first.")
		return
	}
	printJobsTable(jobs)
}

func cmdDetail(ctx context.Context, st *store.Store, args []string) {
	id := parseJobID(args)

	job, err := st.GetJob(ctx, id)
	if err != nil {
		log.Fatalf("Job #%d: %v", id, err)
	}

	fmt.Printf("Job #%d: %s\n%s | %s\n\n", job.ID, job.Title, job.Company, job.Location)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	field := func(name, val string) {
		if val == "" {
			val = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, val)
	}
	field("Source", job.Source)
	field("Posted", job.DatePosted)
	field("Employment Type", job.EmploymentType)
	field("Salary", job.Salary)
	field("Experience", job.ExperienceLevel)
	field("Deadline", job.ApplyDeadline)
	field("Score", strconv.Itoa(job.Score))
	field("Apply URL", job.URL)
	if job.AppStatus != "" {
		field("Status", job.AppStatus)
	}
	if job.AppNotes != "" {
		field("Notes", job.AppNotes)
	}
	if job.AppliedAt != nil {
		field("Applied on", job.AppliedAt.Format("2006-01-02"))
	}
	if job.FollowedUp != nil {
		field("Followed up", job.FollowedUp.Format("2006-01-02"))
	}
	if job.InterviewAt != nil {
		field("Interview", job.InterviewAt.Format("2006-01-02"))
	}
	w.Flush()

	if job.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", job.Description)
	}
}

func cmdApply(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	notes := fs.String("notes", "", "add notes about the application")
	id := parseJobIDFlagSet(fs, args)

	if err := st.SetStatus(ctx, id, domain.StatusApplied, *notes); err != nil {
		log.Fatalf("Failed to update job #%d: %v", id, err)
	}
	fmt.Printf("Job #%d marked as applied.\n", id)
}

func cmdStatus(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	notes := fs.String("notes", "", "add notes")
	id, status := parseStatusFlagSet(fs, args)

	if err := st.SetStatus(ctx, id, status, *notes); err != nil {
		log.Fatalf("Failed to update job #%d: %v", id, err)
	}
	fmt.Printf("Job #%d status updated to %q.\n", id, status)
}

func cmdTrack(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	status := fs.String("status", "", "filter by application status")
	fs.Parse(args)

	apps, err := st.GetApplications(ctx, *status)
	if err != nil {
		log.Fatalf("List applications failed: %v", err)
	}
	if len(apps) == 0 {
		fmt.Println("No tracked applications yet. Use 'jobagent apply <id>' to start tracking.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tSTATUS\tAPPLIED\tNOTES")
	for _, a := range apps {
		applied := ""
		if a.AppliedAt != nil {
			applied = a.AppliedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.JobID, clip(a.Title, 35), clip(a.Company, 20), a.Status, applied, clip(a.Notes, 30))
	}
	w.Flush()
}

func cmdUpdateDetails(ctx context.Context, st *store.Store) {
	jobs, err := st.GetJobs(ctx, 9999, 0)
	if err != nil {
		log.Fatalf("List jobs failed: %v", err)
	}

	updated := 0
	for _, job := range jobs {
		deadline := extract.Deadline(job.Description)
		exp := extract.Experience(job.Title + " " + job.Description)
		if deadline == "" && exp == "" {
			continue
		}
		if err := st.UpdateJobDetails(ctx, job.ID, deadline, exp); err != nil {
			log.Printf("Update job #%d failed: %v", job.ID, err)
			continue
		}
		updated++
	}
	fmt.Printf("Updated details for %d jobs.\n", updated)
}

func cmdStats(ctx context.Context, st *store.Store) {
	stats, err := st.GetStats(ctx)
	if err != nil {
		log.Fatalf("Stats failed: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total jobs found\t%d\n", stats.TotalJobs)
	for _, status := range domain.ValidStatuses {
		if count, ok := stats.ByStatus[status]; ok {
			fmt.Fprintf(w, "%s\t%d\n", status, count)
		}
	}
	w.Flush()
}

func cmdExport(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("o", "jobs_export.csv", "output CSV filename")
	fs.Parse(args)

	jobs, err := st.GetJobs(ctx, 9999, 0)
	if err != nil {
		log.Fatalf("List jobs failed: %v", err)
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs to export.")
		return
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Create %s: %v", *output, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"id", "title", "company", "location", "url", "date_posted",
		"source", "salary", "salary_min", "salary_max",
		"employment_type", "is_remote", "experience_level", "apply_deadline",
		"score", "app_status", "app_notes"}
	if err := w.Write(header); err != nil {
		log.Fatalf("Write CSV: %v", err)
	}
	for _, j := range jobs {
		record := []string{
			strconv.FormatInt(j.ID, 10), j.Title, j.Company, j.Location, j.URL, j.DatePosted,
			j.Source, j.Salary, j.SalaryMin, j.SalaryMax,
			j.EmploymentType, strconv.FormatBool(j.IsRemote), j.ExperienceLevel, j.ApplyDeadline,
			strconv.Itoa(j.Score), j.AppStatus, j.AppNotes,
		}
		if err := w.Write(record); err != nil {
			log.Fatalf("Write CSV: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Write CSV: %v", err)
	}

	fmt.Printf("Exported %d jobs to %s\n", len(jobs), *output)
}

func printJobsTable(jobs []domain.Job) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tTITLE\tCOMPANY\tLOCATION\tSOURCE\tSTATUS")
	for _, j := range jobs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Score, clip(j.Title, 40), clip(j.Company, 22), clip(j.Location, 20), j.Source, j.AppStatus)
	}
	w.Flush()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func parseJobID(args []string) int64 {
	if len(args) < 1 {
		log.Fatal("missing job id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		log.Fatalf("invalid job id %q", args[0])
	}
	return id
}

// parseJobIDFlagSet handles "<id> [flags]" argument order.
func parseJobIDFlagSet(fs *flag.FlagSet, args []string) int64 {
	if len(args) < 1 {
		log.Fatal("missing job id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		log.Fatalf("invalid job id %q", args[0])
	}
	fs.Parse(args[1:])
	return id
}

// parseStatusFlagSet handles "<id> <status> [flags]" argument order.
func parseStatusFlagSet(fs *flag.FlagSet, args []string) (int64, string) {
	if len(args) < 2 {
		log.Fatalf("usage: jobagent status <id> <%s>", strings.Join(domain.ValidStatuses, "|"))
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		log.Fatalf("invalid job id %q", args[0])
	}
	fs.Parse(args[2:])
	return id, args[1]
}
