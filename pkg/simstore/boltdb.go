package simstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cuemby/sdesim/pkg/simmodel"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketModels = []byte("models")
	bucketRuns   = []byte("runs")
)

// BoltStore implements Store using BoltDB, one file per process.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if necessary) <dataDir>/sdesim.db and
// ensures both buckets exist.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "sdesim.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("simstore: failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketModels, bucketRuns} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// SaveModel upserts a named model definition.
func (s *BoltStore) SaveModel(spec *simmodel.ModelSpec) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketModels)
		data, err := json.Marshal(spec)
		if err != nil {
			return err
		}
		return b.Put([]byte(spec.Name), data)
	})
}

// GetModel looks up a model definition by name.
func (s *BoltStore) GetModel(name string) (*simmodel.ModelSpec, error) {
	var spec simmodel.ModelSpec
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketModels)
		data := b.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("model not found: %s", name)
		}
		return json.Unmarshal(data, &spec)
	})
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ListModels returns every stored model definition.
func (s *BoltStore) ListModels() ([]*simmodel.ModelSpec, error) {
	var specs []*simmodel.ModelSpec
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketModels)
		return b.ForEach(func(k, v []byte) error {
			var spec simmodel.ModelSpec
			if err := json.Unmarshal(v, &spec); err != nil {
				return err
			}
			specs = append(specs, &spec)
			return nil
		})
	})
	return specs, err
}

// DeleteModel removes a model definition. It does not touch any run
// summaries recorded against it.
func (s *BoltStore) DeleteModel(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketModels)
		return b.Delete([]byte(name))
	})
}

// SaveRun upserts a run summary, keyed by RunID.
func (s *BoltStore) SaveRun(summary *RunSummary) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		data, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		return b.Put([]byte(summary.RunID), data)
	})
}

// GetRun looks up a run summary by id.
func (s *BoltStore) GetRun(runID string) (*RunSummary, error) {
	var summary RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		data := b.Get([]byte(runID))
		if data == nil {
			return fmt.Errorf("run not found: %s", runID)
		}
		return json.Unmarshal(data, &summary)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListRunsByModel returns every stored run summary for a model name,
// in no particular order (callers that need chronological order
// should sort on StartedAt).
func (s *BoltStore) ListRunsByModel(modelName string) ([]*RunSummary, error) {
	var summaries []*RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		return b.ForEach(func(k, v []byte) error {
			var summary RunSummary
			if err := json.Unmarshal(v, &summary); err != nil {
				return err
			}
			if summary.ModelName == modelName {
				summaries = append(summaries, &summary)
			}
			return nil
		})
	})
	return summaries, err
}
