// Package environment persists the installed-package state of a target
// environment with BoltDB. The store keeps two buckets: the packages
// currently installed, and the package set the last applied plan resolved,
// which later plans diff against as their previous resolution.
package environment

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"pakt/pkg/packages"
)

const (
	bucketInstalled = "installed"
	bucketApplied   = "applied"
)

// Store is a bbolt-backed record of one environment.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates an environment database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open environment database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketInstalled, bucketApplied} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Installed returns the installed snapshot, sorted by name.
func (s *Store) Installed() ([]*packages.Package, error) {
	return s.list(bucketInstalled)
}

// Applied returns the package set recorded by the last applied plan, sorted
// by name. Empty when no plan has been applied yet.
func (s *Store) Applied() ([]*packages.Package, error) {
	return s.list(bucketApplied)
}

// Add records a package as installed, replacing any entry with the same
// name. Packages installed from a legacy index lose their source type:
// installed packages never carry it.
func (s *Store) Add(pkg *packages.Package) error {
	rec := *pkg
	if rec.SourceType == packages.SourceLegacyIndex {
		rec.SourceType = packages.SourceNone
		rec.SourceURL = ""
		rec.SourceReference = ""
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("failed to marshal package: %w", err)
		}
		return tx.Bucket([]byte(bucketInstalled)).Put([]byte(rec.Name), data)
	})
}

// Remove drops a package from the installed set. Removing an absent name is
// not an error.
func (s *Store) Remove(name packages.NormalizedName) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketInstalled)).Delete([]byte(name))
	})
}

// SetApplied replaces the applied-set record with the given packages.
func (s *Store) SetApplied(pkgs []*packages.Package) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketApplied)); err != nil {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(bucketApplied))
		if err != nil {
			return err
		}
		for _, pkg := range pkgs {
			data, err := json.Marshal(pkg)
			if err != nil {
				return fmt.Errorf("failed to marshal package: %w", err)
			}
			if err := bucket.Put([]byte(pkg.Name), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) list(bucket string) ([]*packages.Package, error) {
	var pkgs []*packages.Package

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(_, v []byte) error {
			var pkg packages.Package
			if err := json.Unmarshal(v, &pkg); err != nil {
				return fmt.Errorf("failed to unmarshal package: %w", err)
			}
			pkgs = append(pkgs, &pkg)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	return pkgs, nil
}
