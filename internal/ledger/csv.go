package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sumitscript/ViralWhisper/internal/core/domain"
	"github.com/sumitscript/ViralWhisper/internal/core/ports"
)

// header is the fixed 6-column layout of the interaction file.
var header = []string{"Timestamp", "Post ID", "Post Title", "Subreddit", "Reply", "Promotional Line"}

const timestampLayout = "2006-01-02 15:04:05"

// CSVLedger appends one row per successful post to a flat CSV file. The
// file is only ever appended to — never rewritten — so an interrupted run
// cannot corrupt prior rows.
type CSVLedger struct {
	Path string
}

// NewCSVLedger opens or creates the ledger file and guarantees the header
// row exists before any append.
func NewCSVLedger(path string) (*CSVLedger, error) {
	l := &CSVLedger{Path: path}
	if err := l.ensureHeader(); err != nil {
		return nil, err
	}
	return l, nil
}

var _ ports.Ledger = (*CSVLedger)(nil)

func (l *CSVLedger) ensureHeader() error {
	info, err := os.Stat(l.Path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger: %w", err)
	}

	file, err := os.OpenFile(l.Path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write ledger header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Append writes exactly one row in append-only mode.
func (l *CSVLedger) Append(ctx context.Context, entry domain.LedgerEntry) error {
	file, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	row := []string{
		entry.Timestamp.Format(timestampLayout),
		entry.PostID,
		entry.PostTitle,
		entry.Subreddit,
		entry.Reply,
		entry.Promo,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	w.Flush()
	return w.Error()
}
