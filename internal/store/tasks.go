package store

import (
	"sort"

	"go.uber.org/zap"

	"prom9/internal/fault"
	"prom9/internal/task"
)

// ListTasks returns the full history ordered by id descending. With the
// timestamp id scheme that is newest first.
func (s *Store) ListTasks() []task.Record {
	var records []task.Record
	s.readJSON(s.paths.History, &records)
	sortByIDDesc(records)
	return records
}

// SaveTask upserts by id: an existing record with the same id is replaced in
// place, otherwise the record is appended. The whole collection is re-sorted
// and written atomically.
func (s *Store) SaveTask(rec task.Record) error {
	records := s.ListTasks()

	replaced := false
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	sortByIDDesc(records)
	if err := s.writeJSON(s.paths.History, records); err != nil {
		return err
	}
	s.log.Debug("task saved", zap.String("id", rec.ID), zap.Bool("replaced", replaced))
	return nil
}

// DeleteTask removes the record with the given id, reporting NotFound when
// no record matches. The collection is unchanged in that case.
func (s *Store) DeleteTask(id string) error {
	records := s.ListTasks()

	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return fault.NotFound("tarea " + id)
	}

	if err := s.writeJSON(s.paths.History, kept); err != nil {
		return err
	}
	s.log.Debug("task deleted", zap.String("id", id))
	return nil
}

// FindTask returns the first record with the given id or NotFound.
func (s *Store) FindTask(id string) (task.Record, error) {
	for _, rec := range s.ListTasks() {
		if rec.ID == id {
			return rec, nil
		}
	}
	return task.Record{}, fault.NotFound("tarea " + id)
}

// OverwriteTasks replaces the entire history with the given records.
func (s *Store) OverwriteTasks(records []task.Record) error {
	sortByIDDesc(records)
	return s.writeJSON(s.paths.History, records)
}

func sortByIDDesc(records []task.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})
}
