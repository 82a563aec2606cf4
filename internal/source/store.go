package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"github.com/acmload/clustertime/pkg/log"
)

const lockFileName = ".clustertime.lock"

// RawDir is where raw records of a cluster are kept inside a results
// directory.
func RawDir(resultsDir, cluster string) string {
	return filepath.Join(resultsDir, fmt.Sprintf("cluster-time-%s", cluster))
}

// StatsFile is the path of the text report of a cluster inside a results
// directory.
func StatsFile(resultsDir, cluster string) string {
	return filepath.Join(resultsDir, fmt.Sprintf("cluster-time-%s.stats", cluster))
}

// SaveRaw writes every raw record of the bundle into dir. Concurrent runs
// against the same dir are serialized with a file lock.
func SaveRaw(ctx context.Context, dir string, bundle *Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create raw data directory %q: %w", dir, err)
	}

	fileLock := flock.New(filepath.Join(dir, lockFileName))
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("acquire lock on %q: %w", dir, err)
	}

	defer func() {
		if err := fileLock.Unlock(); err != nil {
			log.Default.Error(ctx, "release lock on %q: %s", dir, err)
		}
	}()

	for _, record := range bundle.RawRecords() {
		data, _ := bundle.Raw(record)
		path := filepath.Join(dir, record.FileName())

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s record to %q: %w", record, path, err)
		}

		log.Default.Debug(ctx, "Saved %s record to %s (%s)", record, path, humanize.Bytes(uint64(len(data))))
	}

	return nil
}
