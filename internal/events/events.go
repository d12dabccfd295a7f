package events

import (
	"time"

	"datathieves/internal/domain"
)

// EventType describes the kind of event emitted by the game.
type EventType string

const (
	EventTypeDataCollected EventType = "DataCollected"
	EventTypeDataSettled   EventType = "DataSettled"
	EventTypeWorkerHired   EventType = "WorkerHired"
	EventTypeJobUpgraded   EventType = "JobUpgraded"
	EventTypeGameReset     EventType = "GameReset"
)

// DataCollectedData is the payload for a manual collect.
type DataCollectedData struct {
	Amount  domain.Gelds `json:"amount"`
	Balance domain.Gelds `json:"balance"`
}

// DataSettledData is the payload for a passive accrual settlement.
type DataSettledData struct {
	Minted domain.Gelds `json:"minted"`
	From   time.Time    `json:"from"`
	To     time.Time    `json:"to"`
}

// WorkerHiredData is the payload for a worker purchase.
type WorkerHiredData struct {
	JobID string       `json:"job_id"`
	Cost  domain.Gelds `json:"cost"`
}

// JobUpgradedData is the payload for a job upgrade.
type JobUpgradedData struct {
	JobID string       `json:"job_id"`
	Cost  domain.Gelds `json:"cost"`
	From  uint32       `json:"from_level"`
	To    uint32       `json:"to_level"`
}

type GameResetData struct {
	Discarded domain.Gelds `json:"discarded"`
}

// Event represents a game event produced by command execution.
type Event struct {
	ID        uint64    `json:"id"`
	SaveID    string    `json:"save_id"`
	At        time.Time `json:"at"`
	CommandID string    `json:"command_id"`
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
}

// New constructs a new Event with the provided fields.
func New(id uint64, at time.Time, commandID string, eventType EventType, data any) Event {
	return Event{
		ID:        id,
		At:        at,
		CommandID: commandID,
		Type:      eventType,
		Data:      data,
	}
}
