// Package export saves the remote CSV dump to disk.
package export

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Downloader is the slice of the API surface the export needs.
type Downloader interface {
	ExportCSV(ctx context.Context) ([]byte, error)
}

// Filename is the fixed pattern: transactions_<today's date>.csv.
func Filename(now time.Time, loc *time.Location) string {
	return "transactions_" + now.In(loc).Format("2006-01-02") + ".csv"
}

// Save downloads the CSV and writes it into dir. Failures are logged and
// swallowed — the export has no user-visible error surface — so the return
// is the written path on success and "" otherwise.
func Save(ctx context.Context, client Downloader, dir string, now time.Time, loc *time.Location, log zerolog.Logger) string {
	data, err := client.ExportCSV(ctx)
	if err != nil {
		log.Error().Err(err).Msg("csv export download failed")
		return ""
	}

	path := filepath.Join(dir, Filename(now, loc))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Error().Err(err).Str("path", path).Msg("csv export write failed")
		return ""
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("csv export saved")
	return path
}
