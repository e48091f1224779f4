package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
)

func testEntry(id string) domain.LedgerEntry {
	return domain.LedgerEntry{
		Timestamp: time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC),
		PostID:    id,
		PostTitle: "Check out our new Kickstarter for a card game!",
		Subreddit: "boardgames",
		Reply:     "Great project!\n\nWe are launching Hand Cricket Showdown soon.",
		Promo:     "We are launching Hand Cricket Showdown soon.",
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewCSVLedger_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.csv")

	_, err := NewCSVLedger(path)
	require.NoError(t, err)

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	require.Equal(t, header, rows[0])

	// reopening an existing non-empty ledger must not duplicate the header
	_, err = NewCSVLedger(path)
	require.NoError(t, err)
	require.Len(t, readRows(t, path), 1)
}

func TestAppend_IsMonotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.csv")
	l, err := NewCSVLedger(path)
	require.NoError(t, err)

	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, l.Append(context.Background(), testEntry(fmt.Sprintf("post%d", i))))
	}

	rows := readRows(t, path)
	require.Len(t, rows, 1+n)
	for i, row := range rows[1:] {
		require.Len(t, row, 6)
		require.Equal(t, "2026-09-01 12:30:00", row[0])
		require.Equal(t, fmt.Sprintf("post%d", i), row[1])
		require.NotEmpty(t, row[2])
		require.NotEmpty(t, row[4])
	}
}

func TestAppend_PreservesExistingRowsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.csv")

	l1, err := NewCSVLedger(path)
	require.NoError(t, err)
	require.NoError(t, l1.Append(context.Background(), testEntry("first")))

	// a later run opens the same file and appends after the old rows
	l2, err := NewCSVLedger(path)
	require.NoError(t, err)
	require.NoError(t, l2.Append(context.Background(), testEntry("second")))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	require.Equal(t, "first", rows[1][1])
	require.Equal(t, "second", rows[2][1])
}

func TestAppend_HandlesEmbeddedNewlinesAndCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interactions.csv")
	l, err := NewCSVLedger(path)
	require.NoError(t, err)

	entry := testEntry("quoted")
	entry.PostTitle = `A "quoted" title, with commas`
	require.NoError(t, l.Append(context.Background(), entry))

	rows := readRows(t, path)
	require.Equal(t, entry.PostTitle, rows[1][2])
	require.Equal(t, entry.Reply, rows[1][4])
}
