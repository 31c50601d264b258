package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cmlabs-hris/leave-tracker/internal/pkg/keylock"
)

// Transactor runs fn atomically. LockScope blocks other transactions on the same
// scope until the surrounding transaction ends.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockScope(ctx context.Context, scope string) error
}

// Serializer runs read-modify-write sequences one at a time per scope. Scopes are
// held in-process by a keyed mutex and across processes by the transactor's lock.
type Serializer struct {
	tx    Transactor
	locks *keylock.KeyLock
}

func NewSerializer(tx Transactor) *Serializer {
	return &Serializer{tx: tx, locks: keylock.New()}
}

// Do acquires every scope, in sorted order, then runs fn inside one transaction.
func (s *Serializer) Do(ctx context.Context, fn func(ctx context.Context) error, scopes ...string) error {
	ordered := uniqueSorted(scopes)

	for _, scope := range ordered {
		unlock, err := s.locks.Lock(ctx, scope)
		if err != nil {
			return err
		}
		defer unlock()
	}

	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for _, scope := range ordered {
			if err := s.tx.LockScope(txCtx, scope); err != nil {
				return err
			}
		}
		return fn(txCtx)
	})
}

// ErrScopeMoved is returned by a DoScoped callback when the record it re-read under
// the lock no longer belongs to the scopes that were resolved for it.
var ErrScopeMoved = errors.New("record moved to another scope while waiting for its lock")

const maxScopeAttempts = 3

// DoScoped resolves the scopes from a read taken before locking, then runs fn under
// them. When fn reports ErrScopeMoved the scopes are resolved again and fn is retried.
func (s *Serializer) DoScoped(ctx context.Context, resolve func(ctx context.Context) ([]string, error), fn func(ctx context.Context) error) error {
	for attempt := 1; attempt <= maxScopeAttempts; attempt++ {
		scopes, err := resolve(ctx)
		if err != nil {
			return err
		}

		err = s.Do(ctx, fn, scopes...)
		if !errors.Is(err, ErrScopeMoved) {
			return err
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxScopeAttempts, ErrScopeMoved)
}

func uniqueSorted(scopes []string) []string {
	seen := make(map[string]struct{}, len(scopes))
	out := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		out = append(out, scope)
	}
	sort.Strings(out)
	return out
}

func DepartmentScope(department string) string {
	return "department:" + strings.ToUpper(strings.TrimSpace(department))
}

func EmployeeScope(employeeID string) string {
	return "employee:" + employeeID
}
