// Package storage reads and writes the persisted catalog file: a JSON
// array of semester catalogs.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/regcat/regcat/internal/utils"
	"github.com/regcat/regcat/pkg/catalog"
)

// Load reads the catalog file at path into a store. The canonical shape is
// a JSON array of semester catalogs; a single JSON object keyed by semester
// id (the old single-semester layout) is accepted and ordered by key.
func Load(path string) (*catalog.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	store, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return store, nil
}

// LoadOrEmpty reads the catalog file for a merge. A missing or invalid
// file is not an error: it is logged and an empty store is returned, so
// the merge overwrites it with fresh data.
func LoadOrEmpty(path string) *catalog.Store {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Log.Warnf("could not read existing catalog %s: %v", path, err)
		}
		utils.Log.Infof("no valid existing data in %s, starting a new catalog", path)
		return catalog.NewStore()
	}

	store, err := decode(data)
	if err != nil {
		utils.Log.Warnf("invalid existing catalog %s, starting a new catalog: %v", path, err)
		return catalog.NewStore()
	}
	return store
}

func decode(data []byte) (*catalog.Store, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("not valid JSON")
	}

	parsed := gjson.ParseBytes(data)
	switch {
	case parsed.IsArray():
		var semesters []*catalog.Semester
		if err := json.Unmarshal(data, &semesters); err != nil {
			return nil, fmt.Errorf("decoding semester array: %w", err)
		}
		for i, sem := range semesters {
			if sem == nil {
				return nil, fmt.Errorf("semester entry %d is null", i)
			}
		}
		return catalog.NewStore(semesters...), nil

	case parsed.IsObject():
		// Single-semester layout: {"20252": {...}, ...}. Keys are ordered
		// so repeated loads produce the same store.
		var byID map[string]*catalog.Semester
		if err := json.Unmarshal(data, &byID); err != nil {
			return nil, fmt.Errorf("decoding semester object: %w", err)
		}
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		semesters := make([]*catalog.Semester, 0, len(byID))
		for _, id := range ids {
			sem := byID[id]
			if sem == nil {
				return nil, fmt.Errorf("semester entry %q is null", id)
			}
			if sem.SemesterID == "" {
				sem.SemesterID = id
			}
			semesters = append(semesters, sem)
		}
		return catalog.NewStore(semesters...), nil
	}

	return nil, fmt.Errorf("top-level value is neither an array nor an object")
}

// Save writes the store to the catalog file as an indented JSON array. The
// write goes to a temp file in the same directory and is renamed into
// place, so a process watching the file never reads a torn catalog.
func Save(path string, store *catalog.Store) error {
	semesters := store.Semesters()
	if semesters == nil {
		semesters = []*catalog.Semester{}
	}
	data, err := json.MarshalIndent(semesters, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp catalog file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp catalog file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing catalog file: %w", err)
	}
	return nil
}
