package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/acmload/clustertime/internal/extract"
	"github.com/acmload/clustertime/pkg/log"
)

var _ Source = (*DirSource)(nil)

// DirSource reads records saved by a previous run, so a cluster can be
// analyzed again after it is gone from the hub.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Fetch(ctx context.Context, cluster string) (*Bundle, error) {
	fileLock := flock.New(filepath.Join(s.dir, lockFileName))
	if locked, err := fileLock.TryRLock(); err != nil {
		log.Default.Debug(ctx, "Unable to lock %q for reading: %s", s.dir, err)
	} else if locked {
		defer fileLock.Unlock()
	}

	bundle := NewBundle(cluster)

	for _, record := range Records {
		path := filepath.Join(s.dir, record.FileName())

		data, err := os.ReadFile(path)
		if err != nil {
			if record.Optional() && errors.Is(err, os.ErrNotExist) {
				log.Default.Debug(ctx, "Skipping missing optional %s record %q", record, path)
				continue
			}

			return nil, &SourceUnavailableError{Record: record, Err: fmt.Errorf("read %q: %w", path, err)}
		}

		if err := decodeInto(bundle, record, data); err != nil {
			if record.Optional() {
				log.Default.Warn(ctx, "Warning: skipping %s record %q: %s", record, path, err)
				continue
			}

			return nil, err
		}

		bundle.SetRaw(record, data)
	}

	return bundle, nil
}

func decodeInto(bundle *Bundle, record Record, data []byte) error {
	source, _ := record.MilestoneSource()

	switch record {
	case RecordEventLog:
		events, err := decodeEvents(data)
		if err != nil {
			return &extract.MalformedRecordError{Source: source, Field: ".", Err: err}
		}
		bundle.Records.EventLog = events
	case RecordPolicies:
		list, err := decodeList(data)
		if err != nil {
			return fmt.Errorf("decode policies: %w", err)
		}
		bundle.Policies = list
	default:
		obj, err := decodeObject(data)
		if err != nil {
			return &extract.MalformedRecordError{Source: source, Field: ".", Err: err}
		}

		switch record {
		case RecordInstallStatus:
			bundle.Records.InstallStatus = obj
		case RecordMembership:
			bundle.Records.Membership = obj
		case RecordUpgrade:
			bundle.Records.UpgradeRecord = obj
		}
	}

	return nil
}
