package inmemdb

import (
	"sync"

	"github.com/eduspark/eduspark/core/academics"
	"github.com/eduspark/eduspark/core/attendance"
	"github.com/eduspark/eduspark/core/finance"
	"github.com/eduspark/eduspark/core/staff"
	"github.com/eduspark/eduspark/core/student"
	"github.com/eduspark/eduspark/core/user"
)

// DB is the in-memory database used by tests and local tooling.
type DB struct {
	mutex sync.RWMutex

	users      map[string]*user.User
	students   map[string]*student.Student
	employees  map[string]*staff.Employee
	attendance map[string]*attendance.Record
	classes    map[string]*academics.Class
	subjects   map[string]*academics.Subject

	// insertion-ordered ledgers
	earnings []finance.Earning
	expenses []finance.Expense
	payments []finance.InvestmentPayment
}

func Open() (*DB, error) {
	db := new(DB)
	db.reset()
	return db, nil
}

// Reset drops all data. Tests call it between runs.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.reset()
}

func (db *DB) reset() {
	db.users = make(map[string]*user.User)
	db.students = make(map[string]*student.Student)
	db.employees = make(map[string]*staff.Employee)
	db.attendance = make(map[string]*attendance.Record)
	db.classes = make(map[string]*academics.Class)
	db.subjects = make(map[string]*academics.Subject)
	db.earnings = nil
	db.expenses = nil
	db.payments = nil
}
