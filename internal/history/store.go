// Package history persists a summary of each analysis run so runs can be
// compared later.
package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/btree"
	"go.etcd.io/bbolt"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

// Bucket names in bbolt
var (
	bucketRuns = []byte("runs")
	bucketMeta = []byte("meta")
)

var keyLastSeq = []byte("last_sequence")

// RunRecord is the stored summary of one analysis run.
type RunRecord struct {
	Seq           int64                `json:"seq"`
	GeneratedAt   string               `json:"generated_at"`
	Region        string               `json:"region"`
	PeriodDays    int                  `json:"period_days"`
	TotalBackups  int                  `json:"total_backups"`
	TotalSizeGB   float64              `json:"total_size_gb"`
	StatusSummary report.StatusSummary `json:"status_summary"`
	JSONPath      string               `json:"json_path"`
	WorkbookPath  string               `json:"workbook_path"`
}

// Store is the bbolt-backed run history with an in-memory index ordered by
// sequence number.
type Store struct {
	mu sync.RWMutex

	index   *btree.BTreeG[*RunRecord]
	db      *bbolt.DB
	lastSeq int64
}

// Open opens (or creates) the history database under dir.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "history.db")

	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketRuns, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history buckets: %w", err)
	}

	s := &Store{
		index: btree.NewG[*RunRecord](32, func(a, b *RunRecord) bool {
			return a.Seq < b.Seq
		}),
		db: db,
	}

	if err := s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a run record and returns its sequence number.
func (s *Store) Record(rec RunRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeq++
	rec.Seq = s.lastSeq

	err := s.db.Update(func(tx *bbolt.Tx) error {
		value, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketRuns).Put(seqKey(rec.Seq), value); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(keyLastSeq, seqKey(s.lastSeq))
	})
	if err != nil {
		s.lastSeq--
		return 0, fmt.Errorf("record run: %w", err)
	}

	s.index.ReplaceOrInsert(&rec)
	return rec.Seq, nil
}

// List returns all runs, newest first.
func (s *Store) List() []RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]RunRecord, 0, s.index.Len())
	s.index.Descend(func(rec *RunRecord) bool {
		runs = append(runs, *rec)
		return true
	})
	return runs
}

// load rebuilds the in-memory index from disk.
func (s *Store) load() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get(keyLastSeq); v != nil {
			s.lastSeq = int64(binary.BigEndian.Uint64(v))
		}

		return tx.Bucket(bucketRuns).ForEach(func(_, v []byte) error {
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode run record: %w", err)
			}
			s.index.ReplaceOrInsert(&rec)
			return nil
		})
	})
}

func seqKey(seq int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(seq))
	return key
}
