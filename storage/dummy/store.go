// Package dummystore provides an in-memory record store for local
// development and tests.
package dummystore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/trezcool/classtrack/core"
)

type Store struct {
	mu      sync.RWMutex
	tables  map[string]map[int]core.Record
	pkCount int

	// ForceWriteFailure, when set, makes Create/Update report a per-record
	// failure with the returned message for any record it matches
	// (empty return means success). Test hook.
	ForceWriteFailure func(collection string, rec core.Record) string
}

var _ core.RecordStore = (*Store)(nil)

func Open() (*Store, error) {
	return &Store{
		tables: map[string]map[int]core.Record{
			core.StudentsCollection:   make(map[int]core.Record),
			core.AttendanceCollection: make(map[int]core.Record),
			core.GradesCollection:     make(map[int]core.Record),
		},
	}, nil
}

func (s *Store) table(collection string) (map[int]core.Record, error) {
	tbl, ok := s.tables[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	return tbl, nil
}

func (s *Store) Fetch(_ context.Context, collection string, q core.RecordQuery) (core.FetchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, err := s.table(collection)
	if err != nil {
		return core.FetchResult{Message: err.Error()}, nil
	}

	ids := make([]int, 0, len(tbl))
	for id := range tbl {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	records := make([]core.Record, 0, len(ids))
	for _, id := range ids {
		rec := tbl[id]
		if q.Matches(rec) {
			records = append(records, copyRecord(rec))
		}
	}
	return core.FetchResult{Success: true, Data: records}, nil
}

func (s *Store) GetByID(_ context.Context, collection string, id int, _ core.RecordQuery) (core.GetResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, err := s.table(collection)
	if err != nil {
		return core.GetResult{Message: err.Error()}, nil
	}
	rec, ok := tbl[id]
	if !ok {
		return core.GetResult{Message: fmt.Sprintf("record %d does not exist", id)}, nil
	}
	return core.GetResult{Success: true, Data: copyRecord(rec)}, nil
}

func (s *Store) Create(_ context.Context, collection string, records ...core.Record) (core.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.table(collection)
	if err != nil {
		return core.WriteResult{Message: err.Error()}, nil
	}

	results := make([]core.RecordResult, 0, len(records))
	for _, rec := range records {
		if msg := s.writeFailure(collection, rec); msg != "" {
			results = append(results, core.RecordResult{Message: msg})
			continue
		}
		s.pkCount++
		saved := copyRecord(rec)
		saved[core.FieldID] = s.pkCount
		tbl[s.pkCount] = saved
		results = append(results, core.RecordResult{Success: true, Data: copyRecord(saved)})
	}
	return core.WriteResult{Success: true, Results: results}, nil
}

func (s *Store) Update(_ context.Context, collection string, records ...core.Record) (core.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.table(collection)
	if err != nil {
		return core.WriteResult{Message: err.Error()}, nil
	}

	results := make([]core.RecordResult, 0, len(records))
	for _, rec := range records {
		id, err := rec.ID()
		if err != nil {
			results = append(results, core.RecordResult{Message: "record carries no id"})
			continue
		}
		orig, ok := tbl[id]
		if !ok {
			results = append(results, core.RecordResult{Message: fmt.Sprintf("record %d does not exist", id)})
			continue
		}
		if msg := s.writeFailure(collection, rec); msg != "" {
			results = append(results, core.RecordResult{Message: msg})
			continue
		}
		// only overwrite provided fields
		saved := copyRecord(orig)
		for field, val := range rec {
			saved[field] = val
		}
		tbl[id] = saved
		results = append(results, core.RecordResult{Success: true, Data: copyRecord(saved)})
	}
	return core.WriteResult{Success: true, Results: results}, nil
}

func (s *Store) Delete(_ context.Context, collection string, ids ...int) (core.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.table(collection)
	if err != nil {
		return core.DeleteResult{Message: err.Error()}, nil
	}

	results := make([]core.RecordResult, 0, len(ids))
	for _, id := range ids {
		if _, ok := tbl[id]; !ok {
			results = append(results, core.RecordResult{Message: fmt.Sprintf("record %d does not exist", id)})
			continue
		}
		delete(tbl, id)
		results = append(results, core.RecordResult{Success: true})
	}
	return core.DeleteResult{Success: true, Results: results}, nil
}

func (s *Store) writeFailure(collection string, rec core.Record) string {
	if s.ForceWriteFailure == nil {
		return ""
	}
	return s.ForceWriteFailure(collection, rec)
}

func copyRecord(rec core.Record) core.Record {
	cp := make(core.Record, len(rec))
	for field, val := range rec {
		cp[field] = val
	}
	return cp
}
