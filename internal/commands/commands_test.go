package commands

import "testing"

func TestSyncStateCommand(t *testing.T) {
	cmd := SyncState{ID: "sync-1"}
	if cmd.CommandID() != "sync-1" {
		t.Fatalf("expected CommandID sync-1 got %s", cmd.CommandID())
	}
	if cmd.Name() != "SyncState" {
		t.Fatalf("expected name SyncState got %s", cmd.Name())
	}
}

func TestSettleCommand(t *testing.T) {
	cmd := &Settle{ID: "settle-1"}
	if cmd.CommandID() != "settle-1" {
		t.Fatalf("expected CommandID settle-1 got %s", cmd.CommandID())
	}
	if cmd.Name() != "Settle" {
		t.Fatalf("expected name Settle got %s", cmd.Name())
	}
}

func TestCollectDataCommand(t *testing.T) {
	cmd := &CollectData{ID: "collect-1"}
	if cmd.CommandID() != "collect-1" {
		t.Fatalf("expected CommandID collect-1 got %s", cmd.CommandID())
	}
	if cmd.Name() != "CollectData" {
		t.Fatalf("expected name CollectData got %s", cmd.Name())
	}
}

func TestHireWorkerCommand(t *testing.T) {
	cmd := HireWorker{ID: "hire-1", JobID: "botnet"}
	if cmd.CommandID() != "hire-1" {
		t.Fatalf("expected CommandID hire-1 got %s", cmd.CommandID())
	}
	if cmd.Name() != "HireWorker" {
		t.Fatalf("expected name HireWorker got %s", cmd.Name())
	}
}

func TestUpgradeJobCommand(t *testing.T) {
	cmd := UpgradeJob{ID: "upgrade-1", JobID: "botnet"}
	if cmd.CommandID() != "upgrade-1" {
		t.Fatalf("expected CommandID upgrade-1 got %s", cmd.CommandID())
	}
	if cmd.Name() != "UpgradeJob" {
		t.Fatalf("expected name UpgradeJob got %s", cmd.Name())
	}
}

func TestResetGameCommand(t *testing.T) {
	cmd := ResetGame{ID: "reset-1"}
	if cmd.CommandID() != "reset-1" {
		t.Fatalf("expected CommandID reset-1 got %s", cmd.CommandID())
	}
	if cmd.Name() != "ResetGame" {
		t.Fatalf("expected name ResetGame got %s", cmd.Name())
	}
}

var (
	_ Command = SyncState{}
	_ Command = (*Settle)(nil)
	_ Command = (*CollectData)(nil)
	_ Command = HireWorker{}
	_ Command = UpgradeJob{}
	_ Command = ResetGame{}
)
