package commands

// Command represents a typed command for the GameService executor.
type Command interface {
	CommandID() string
	Name() string
}

// SyncState requests a state snapshot without changing game state.
type SyncState struct {
	ID string
}

func (c SyncState) CommandID() string {
	return c.ID
}

func (c SyncState) Name() string {
	return "SyncState"
}

// Settle requests passive accrual and exposes the minted amount.
type Settle struct {
	ID     string
	Minted uint64
}

func (c *Settle) CommandID() string {
	return c.ID
}

func (c *Settle) Name() string {
	return "Settle"
}

// CollectData is the manual click that adds the click reward to the bank.
type CollectData struct {
	ID        string
	Collected uint64
}

func (c *CollectData) CommandID() string {
	return c.ID
}

func (c *CollectData) Name() string {
	return "CollectData"
}

// HireWorker buys the single worker slot of a job.
type HireWorker struct {
	ID    string
	JobID string
}

func (c HireWorker) CommandID() string {
	return c.ID
}

func (c HireWorker) Name() string {
	return "HireWorker"
}

// UpgradeJob pays the current level cost to advance a job one level.
type UpgradeJob struct {
	ID    string
	JobID string
}

func (c UpgradeJob) CommandID() string {
	return c.ID
}

func (c UpgradeJob) Name() string {
	return "UpgradeJob"
}

// ResetGame wipes progress and starts over on the same save slot.
type ResetGame struct {
	ID string
}

func (c ResetGame) CommandID() string {
	return c.ID
}

func (c ResetGame) Name() string {
	return "ResetGame"
}
