package fetcher

import (
	"time"
)

// AttemptResult records the result of one try.
type AttemptResult struct {
	Timestamp  time.Time
	Error      string
	Attempt    int
	Duration   time.Duration
	StatusCode int
	Bytes      int
	Success    bool
}

func newAttempt(attempt int, started time.Time, resp *response, err error) AttemptResult {
	a := AttemptResult{
		Timestamp: started,
		Attempt:   attempt,
		Duration:  time.Since(started),
		Success:   err == nil,
	}

	if resp != nil {
		a.StatusCode = resp.statusCode
		a.Bytes = len(resp.body)
	}

	if err != nil {
		a.Error = err.Error()
	}

	return a
}

// AttemptStats summarizes the tries of one or more resources.
type AttemptStats struct {
	Total         int
	Succeeded     int
	Failed        int
	TotalDuration time.Duration
}

// Stats folds attempts into an AttemptStats.
func Stats(attempts []AttemptResult) AttemptStats {
	var s AttemptStats

	for _, a := range attempts {
		s.Total++
		s.TotalDuration += a.Duration

		if a.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}

	return s
}
