package domain

import "time"

// GameState holds the current in-memory game state for one save slot.
type GameState struct {
	SaveID         string    `json:"save_id"`
	StashedMoney   Gelds     `json:"stashed_money"`
	AvailableJobs  []GameJob `json:"available_jobs"`
	Workers        []Worker  `json:"workers"`
	FirstStartedAt time.Time `json:"first_started_at"`
	LastSettledAt  time.Time `json:"last_settled_at"`
	Version        uint64    `json:"version"`
}

// Worker is an owned production assignment for a job.
type Worker struct {
	JobID      string    `json:"job_id"`
	HiredAt    time.Time `json:"hired_at"`
	LastPaidAt time.Time `json:"last_paid_at"`
}

// Clone returns a deep copy so callers can never alias engine-owned slices.
func (s GameState) Clone() GameState {
	out := s
	if s.AvailableJobs != nil {
		out.AvailableJobs = make([]GameJob, len(s.AvailableJobs))
		copy(out.AvailableJobs, s.AvailableJobs)
	}
	if s.Workers != nil {
		out.Workers = make([]Worker, len(s.Workers))
		copy(out.Workers, s.Workers)
	}
	return out
}

// Job returns the available job with the given id.
func (s GameState) Job(id string) (GameJob, bool) {
	for _, j := range s.AvailableJobs {
		if j.ID == id {
			return j, true
		}
	}
	return GameJob{}, false
}

// HasWorker reports whether a worker is already assigned to jobID.
func (s GameState) HasWorker(jobID string) bool {
	for _, w := range s.Workers {
		if w.JobID == jobID {
			return true
		}
	}
	return false
}
