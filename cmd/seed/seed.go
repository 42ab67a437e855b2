package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

type seedOptions struct {
	baseURL    string
	sessions   int
	candidates int
	capacity   int
	duration   int // minutes
	start      time.Time
}

// outcome is one line of the seed report.
type outcome struct {
	session string
	subject string
	status  string
	detail  string
	failed  bool
}

var sessionTitles = []string{
	"Algorithms Final",
	"Organic Chemistry Midterm",
	"Linear Algebra Final",
	"Microeconomics Quiz",
	"Operating Systems Final",
}

// seed creates sessions two hours apart, enrolls the same candidate pool into
// each and books one proctor on all of them.
func seed(ctx context.Context, out io.Writer, opts seedOptions) ([]outcome, error) {
	client := newAPIClient(opts.baseURL)
	var results []outcome

	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(out, "\n=== Seeding %s ===\n", opts.baseURL)

	for i := 0; i < opts.sessions; i++ {
		title := sessionTitles[i%len(sessionTitles)]
		if i >= len(sessionTitles) {
			title = fmt.Sprintf("%s %d", title, i/len(sessionTitles)+1)
		}

		var session model.ExamSession
		_, err := client.call(ctx, http.MethodPost, "/api/sessions", map[string]interface{}{
			"title":         title,
			"duration":      opts.duration,
			"maxCandidates": opts.capacity,
			"startTime":     opts.start.Add(time.Duration(i) * 2 * time.Hour).Format(time.RFC3339),
		}, &session)
		if err != nil {
			return results, fmt.Errorf("create session %q: %w", title, err)
		}

		for j := 1; j <= opts.candidates; j++ {
			studentID := fmt.Sprintf("STU%03d", j)
			var result model.EnrollmentResult
			_, err := client.call(ctx, http.MethodPost, "/api/sessions/"+session.ID+"/enroll", map[string]string{
				"email":     fmt.Sprintf("student%03d@example.com", j),
				"name":      fmt.Sprintf("Student %03d", j),
				"studentId": studentID,
			}, &result)
			results = append(results, enrollOutcome(title, studentID, result, err))
			if err != nil && !isAPIError(err) {
				return results, err
			}
		}

		_, err = client.call(ctx, http.MethodPost, "/api/sessions/"+session.ID+"/proctors", map[string]string{
			"proctorId":    "PRC001",
			"proctorName":  "Grace Hopper",
			"proctorEmail": "grace.hopper@example.com",
		}, nil)
		o := outcome{session: title, subject: "PRC001", status: "proctor assigned"}
		if err != nil {
			if !isAPIError(err) {
				return results, err
			}
			o.status, o.detail, o.failed = "rejected", err.Error(), true
		}
		results = append(results, o)
	}

	render(out, results)
	return results, nil
}

func enrollOutcome(title, studentID string, result model.EnrollmentResult, err error) outcome {
	o := outcome{session: title, subject: studentID}
	switch {
	case err != nil:
		o.status, o.detail, o.failed = "rejected", err.Error(), true
	case result.Status == model.EnrollmentWaitlisted:
		o.status, o.detail = string(result.Status), "position "+strconv.Itoa(result.Position)
	default:
		o.status = string(result.Status)
	}
	return o
}

func isAPIError(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr)
}

func render(out io.Writer, results []outcome) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Session", "Who", "Status", "Detail"})
	for _, r := range results {
		table.Append([]string{r.session, r.subject, r.status, r.detail})
	}
	table.Render()

	failed := 0
	for _, r := range results {
		if r.failed {
			failed++
		}
	}
	if failed > 0 {
		color.New(color.FgRed).Fprintf(out, "%d of %d requests rejected\n", failed, len(results))
		return
	}
	color.New(color.FgGreen).Fprintf(out, "All %d requests succeeded\n", len(results))
}
