// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Centralised store of per file metric summaries.

package metric

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/jszwec/csvutil"
)

var ErrRecordNotFound = errors.New("record not found")

type ID int64

type Store struct {
	mu      sync.RWMutex
	records map[ID]Record
	next    ID
}

func NewStore() *Store {
	return &Store{
		records: make(map[ID]Record),
	}
}

func (s *Store) Insert(r Record) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[s.next] = r
	id := s.next
	s.next++

	return id
}

func (s *Store) Get(id ID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return r, fmt.Errorf("getting record: %w", ErrRecordNotFound)
	}

	return r, nil
}

// GetIDs returns IDs of all records in insertion order.
func (s *Store) GetIDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]ID, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WriteCSV writes all records to w as CSV with a header line, in insertion order.
func (s *Store) WriteCSV(w io.Writer) error {
	ids := s.GetIDs()
	report := make([]Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.Get(id)
		if err != nil {
			return fmt.Errorf("getting record (id=%v): %w", id, err)
		}
		report = append(report, r)
	}

	cw := csv.NewWriter(w)
	if err := csvutil.NewEncoder(cw).Encode(report); err != nil {
		return fmt.Errorf("encoding CSV report: %w", err)
	}
	cw.Flush()

	return cw.Error()
}

// Record contains summary of a single metric from a single report file.
type Record struct {
	File     string  `csv:"file"`
	Metric   string  `csv:"metric"`
	Frames   int     `csv:"frames"`
	Min      float64 `csv:"min"`
	Max      float64 `csv:"max"`
	Mean     float64 `csv:"mean"`
	Variance float64 `csv:"variance"`
}
