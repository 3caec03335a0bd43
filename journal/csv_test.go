package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSV(t *testing.T) (*CSVJournal, string, string) {
	t.Helper()

	dir := t.TempDir()
	dailyPath := filepath.Join(dir, "daily.csv")
	runsPath := filepath.Join(dir, "runs.csv")

	j, err := NewCSV(dailyPath, runsPath)
	require.NoError(t, err)

	return j, dailyPath, runsPath
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	j, dailyPath, runsPath := newTestCSV(t)
	require.NoError(t, j.Close())

	daily := readAll(t, dailyPath)
	require.Len(t, daily, 1)
	assert.Equal(t, []string{"run_id", "date", "equity", "units", "liquidated", "benchmark_equity", "cumulative_cost", "trigger_level", "unit_change", "action"}, daily[0])

	runs := readAll(t, runsPath)
	require.Len(t, runs, 1)
	assert.Equal(t, "run_id", runs[0][0])
	assert.Equal(t, "liquidation_date", runs[0][7])
}

func TestCSVJournalRecordDaily(t *testing.T) {
	t.Parallel()

	j, dailyPath, _ := newTestCSV(t)

	rec := sampleDaily("RUN-1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, j.RecordDaily(rec))
	require.NoError(t, j.Close())

	rows := readAll(t, dailyPath)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "RUN-1", row[0])
	assert.Equal(t, "2024-01-02", row[1])
	assert.Equal(t, "10123.450000", row[2])
	assert.Equal(t, "false", row[4])
	assert.Equal(t, "Hold", row[9])
}

func TestCSVJournalRecordSummary(t *testing.T) {
	t.Parallel()

	j, _, runsPath := newTestCSV(t)

	require.NoError(t, j.RecordSummary(RunSummary{
		RunID:              "RUN-1",
		Label:              "SPY",
		CreatedAt:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		InitialCapital:     10_000,
		MaxDropPercent:     0.30,
		RebalanceFrequency: "Monthly",
		Liquidated:         true,
		LiquidationDate:    time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		FinalEquity:        769.23,
		TotalReturnPct:     -92.31,
		TotalCostsPaid:     45.67,
		InitialUnits:       30.7692,
	}))
	require.NoError(t, j.Close())

	rows := readAll(t, runsPath)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "RUN-1", row[0])
	assert.Equal(t, "SPY", row[1])
	assert.Equal(t, "Monthly", row[5])
	assert.Equal(t, "true", row[6])
	assert.Equal(t, "2024-03-14", row[7])
}

func TestCSVJournalEmptyLiquidationDate(t *testing.T) {
	t.Parallel()

	j, _, runsPath := newTestCSV(t)

	require.NoError(t, j.RecordSummary(RunSummary{
		RunID:              "RUN-OK",
		Label:              "SPY",
		CreatedAt:          time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		InitialCapital:     10_000,
		MaxDropPercent:     0.30,
		RebalanceFrequency: "None",
		FinalEquity:        12_000,
		TotalReturnPct:     20,
		InitialUnits:       30.7692,
	}))
	require.NoError(t, j.Close())

	rows := readAll(t, runsPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "false", rows[1][6])
	assert.Equal(t, "", rows[1][7])
}
