package inmemdb

import (
	"context"
	"sort"

	"github.com/eduspark/eduspark/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) query() []attendance.Record {
	recs := make([]attendance.Record, 0, len(repo.db.attendance))
	for _, rec := range repo.db.attendance {
		recs = append(recs, *rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Date != recs[j].Date {
			return recs[i].Date > recs[j].Date
		}
		return recs[i].ID < recs[j].ID
	})
	return recs
}

func (repo *attendanceRepository) CreateRecord(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.attendance[rec.ID] = &rec
	return rec, nil
}

func (repo *attendanceRepository) QueryRecords(_ context.Context, date string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if date == "" {
		return repo.query(), nil
	}
	var recs []attendance.Record
	for _, rec := range repo.query() {
		if rec.Date == date {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (repo *attendanceRepository) GetRecordByID(_ context.Context, id string) (attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rec, ok := repo.db.attendance[id]; ok {
		return *rec, nil
	}
	return attendance.Record{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) UpdateRecord(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.attendance[rec.ID]; !ok {
		return attendance.Record{}, attendance.ErrNotFound
	}
	repo.db.attendance[rec.ID] = &rec
	return rec, nil
}
