package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datathieves/internal/domain"
	"datathieves/internal/store"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCatalogCommand(t *testing.T) {
	out := execute(t, "catalog", "--save-dir", t.TempDir())

	assert.Contains(t, out, "cookie-jar")
	assert.Contains(t, out, "Cookie Jar")
	assert.Contains(t, out, "1.5M")
}

func TestStatusWithoutSave(t *testing.T) {
	out := execute(t, "status", "--save-dir", t.TempDir(), "--save-id", "fresh")

	assert.Contains(t, out, `No save "fresh" yet`)
	assert.Contains(t, out, "Data Bank: 0 Data")
}

func TestStatusAndReset(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	require.NoError(t, store.NewJSONStore(dir).Save(context.Background(), domain.GameState{
		SaveID:       "slot-1",
		StashedMoney: 2500,
		AvailableJobs: []domain.GameJob{
			{ID: "cookie-jar", Name: "Cookie Jar", Level: domain.Level{Level: 4, Cost: 53, Earn: 2, Duration: 2 * time.Second}},
		},
		Workers:        []domain.Worker{{JobID: "cookie-jar", HiredAt: now, LastPaidAt: now}},
		FirstStartedAt: now,
		LastSettledAt:  now,
	}))

	out := execute(t, "status", "--save-dir", dir, "--save-id", "slot-1")
	assert.Contains(t, out, "Data Bank: 2.5K Data")
	assert.Contains(t, out, "Purchased")

	out = execute(t, "reset", "--save-dir", dir, "--save-id", "slot-1")
	assert.Contains(t, out, `Save "slot-1" deleted.`)

	_, err := store.NewJSONStore(dir).Load(context.Background(), "slot-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDebugFlagEnablesDiagnostics(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { debug = false })

	out := execute(t, "status", "--save-dir", dir, "--save-id", "quiet")
	assert.NotContains(t, out, "store.json")

	out = execute(t, "status", "--save-dir", dir, "--save-id", "loud", "--debug")
	assert.Contains(t, out, "store.json")
}
