package leave

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/leave-tracker/internal/domain/leave"
)

type fakeStore struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
	counters  map[string]employee.DepartmentCounter
	requests  map[string]leave.LeaveRequest
	sequence  int
	failOn    map[string]error
	hooks     map[string]func()
	locked    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: make(map[string]employee.Employee),
		counters:  make(map[string]employee.DepartmentCounter),
		requests:  make(map[string]leave.LeaveRequest),
		failOn:    make(map[string]error),
		hooks:     make(map[string]func()),
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.sequence++
	return fmt.Sprintf("%s-%d", prefix, s.sequence)
}

func (s *fakeStore) fail(op string) error {
	return s.failOn[op]
}

// after registers a one-shot hook that runs once op has read the store.
func (s *fakeStore) after(op string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks[op] = fn
}

func (s *fakeStore) runHook(op string) {
	s.mu.Lock()
	fn := s.hooks[op]
	delete(s.hooks, op)
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// WithinTx restores the previous state when fn fails.
func (s *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	employees := make(map[string]employee.Employee, len(s.employees))
	for k, v := range s.employees {
		employees[k] = v
	}
	counters := make(map[string]employee.DepartmentCounter, len(s.counters))
	for k, v := range s.counters {
		counters[k] = v
	}
	requests := make(map[string]leave.LeaveRequest, len(s.requests))
	for k, v := range s.requests {
		requests[k] = v
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.employees, s.counters, s.requests = employees, counters, requests
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) LockScope(_ context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = append(s.locked, scope)
	return nil
}

type fakeEmployeeRepo struct{ s *fakeStore }

func (r fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	defer r.s.runHook("EmployeeGetByID")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	emp, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r fakeEmployeeRepo) find(match func(employee.Employee) bool) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, emp := range r.s.employees {
		if match(emp) {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r fakeEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (employee.Employee, error) {
	return r.find(func(e employee.Employee) bool { return e.EmployeeID == employeeID })
}

func (r fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	if err := r.s.fail("GetByEmail"); err != nil {
		return employee.Employee{}, err
	}
	return r.find(func(e employee.Employee) bool { return e.Email == email })
}

func (r fakeEmployeeRepo) ListByDepartment(_ context.Context, department string) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]employee.Employee, 0)
	for _, emp := range r.s.employees {
		if strings.EqualFold(emp.Department, department) {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.s.employees))
	for _, emp := range r.s.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r fakeEmployeeRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.employees)), nil
}

func (r fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if err := r.s.fail("Create"); err != nil {
		return employee.Employee{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.employees {
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
		if existing.EmployeeID == e.EmployeeID {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
	}
	e.ID = r.s.nextID("emp")
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.s.employees[e.ID] = e
	return e, nil
}

func (r fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.TotalLeaveBalance = current.TotalLeaveBalance
	e.LeaveUsed = current.LeaveUsed
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = time.Now()
	r.s.employees[e.ID] = e
	return e, nil
}

func (r fakeEmployeeRepo) AddLeaveUsed(_ context.Context, employeeID string, days int) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, emp := range r.s.employees {
		if emp.EmployeeID == employeeID {
			emp.LeaveUsed += days
			r.s.employees[id] = emp
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r fakeEmployeeRepo) Delete(_ context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	emp, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	delete(r.s.employees, id)
	return emp, nil
}

type fakeCounterRepo struct{ s *fakeStore }

func (r fakeCounterRepo) BumpMax(_ context.Context, department string, seq int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.counters[department]
	c.Department = department
	if seq > c.Seq {
		c.Seq = seq
	}
	r.s.counters[department] = c
	return nil
}

type fakeLeaveRequestRepo struct{ s *fakeStore }

func (r fakeLeaveRequestRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = r.s.nextID("lr")
	r.s.requests[req.ID] = req
	return req, nil
}

func (r fakeLeaveRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	defer r.s.runHook("LeaveRequestGetByID")
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r fakeLeaveRequestRepo) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]leave.LeaveRequest, 0)
	for _, req := range r.s.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r fakeLeaveRequestRepo) FindOverlapping(_ context.Context, employeeID string, start, end time.Time, statuses []leave.LeaveRequestStatus) (*leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		for _, st := range statuses {
			if req.Status == st && leave.Overlaps(req.StartDate, req.EndDate, start, end) {
				found := req
				return &found, nil
			}
		}
	}
	return nil, nil
}

func (r fakeLeaveRequestRepo) UpdateStatus(_ context.Context, id string, from, to leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if req.Status != from {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	req.Status = to
	r.s.requests[id] = req
	return req, nil
}

func (r fakeLeaveRequestRepo) ReassignEmployee(_ context.Context, oldEmployeeID, newEmployeeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, req := range r.s.requests {
		if req.EmployeeID == oldEmployeeID {
			req.EmployeeID = newEmployeeID
			r.s.requests[id] = req
			n++
		}
	}
	return n, nil
}

func (r fakeLeaveRequestRepo) DeleteByEmployeeID(_ context.Context, employeeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, req := range r.s.requests {
		if req.EmployeeID == employeeID {
			delete(r.s.requests, id)
			n++
		}
	}
	return n, nil
}

func (r fakeLeaveRequestRepo) CountByStatus(_ context.Context, status leave.LeaveRequestStatus) (int64, error) {
	if err := r.s.fail("CountByStatus"); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, req := range r.s.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}
