package fetcher

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/odpf/dotnet-fetch/internal/release"
)

type Status string

const (
	StatusDownloaded Status = "downloaded"
	StatusSkipped    Status = "skipped"
	StatusPlanned    Status = "planned"
	StatusFailed     Status = "failed"
)

// Result is the outcome of one step of a run. Failures that happen before a
// combination is known leave the later fields empty.
type Result struct {
	Channel  string
	Kind     release.Kind
	Platform release.Platform
	Format   release.Format
	Version  string
	URL      string
	Path     string
	Status   Status
	Err      error
}

// Target describes what the result is about, e.g. 3.1/sdk/win-x64/zip.
func (r Result) Target() string {
	target := r.Channel
	for _, part := range []string{r.Kind.String(), r.Platform.String(), r.Format.String()} {
		if part == "" {
			break
		}
		target += "/" + part
	}
	return target
}

// Summary collects the results of a run in execution order.
type Summary struct {
	Results []Result
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
}

func (s *Summary) Count(status Status) int {
	count := 0
	for _, r := range s.Results {
		if r.Status == status {
			count++
		}
	}
	return count
}

func (s *Summary) Failures() []Result {
	var failures []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			failures = append(failures, r)
		}
	}
	return failures
}

// Err combines every failure of the run, nil when nothing failed.
func (s *Summary) Err() error {
	var result *multierror.Error
	for _, r := range s.Failures() {
		result = multierror.Append(result, fmt.Errorf("%s: %w", r.Target(), r.Err))
	}
	return result.ErrorOrNil()
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d downloaded, %d skipped, %d planned, %d failed",
		s.Count(StatusDownloaded), s.Count(StatusSkipped), s.Count(StatusPlanned), s.Count(StatusFailed))
}
