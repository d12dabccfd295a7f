package domain

import "time"

// Level is one step on a job's leveling curve.
type Level struct {
	Level    uint32        `json:"level"`
	Cost     Gelds         `json:"cost"`
	Earn     Gelds         `json:"earn"`
	Duration time.Duration `json:"duration"`
}

// GameJob is a purchasable production unit.
type GameJob struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level Level  `json:"level"`
}
