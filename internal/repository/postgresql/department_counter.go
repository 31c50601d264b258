package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/leave-tracker/internal/pkg/database"
)

type departmentCounterRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentCounterRepository(db *database.DB) employee.DepartmentCounterRepository {
	return &departmentCounterRepositoryImpl{db: db}
}

// BumpMax implements employee.DepartmentCounterRepository.
func (d *departmentCounterRepositoryImpl) BumpMax(ctx context.Context, department string, seq int) error {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO department_counters (department, seq, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (department)
		DO UPDATE SET seq = GREATEST(department_counters.seq, EXCLUDED.seq), updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, department, seq); err != nil {
		return fmt.Errorf("bump department counter %s: %w", department, err)
	}
	return nil
}
