package repository

import (
	"context"

	"github.com/spec-kit/failtrack/internal/domain"
)

// LookupRepository reads the line, machine and status tables.
type LookupRepository interface {
	ListLines(ctx context.Context) ([]domain.Line, error)
	ListMachinesByLine(ctx context.Context, lineID int64) ([]domain.Machine, error)
	ListStatuses(ctx context.Context) ([]domain.Status, error)
}

type lookupRepository struct {
	db DBTX
}

// NewLookupRepository builds the repository.
func NewLookupRepository(db DBTX) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) ListLines(ctx context.Context) ([]domain.Line, error) {
	rows, err := r.db.Query(ctx, `SELECT id, line_name FROM lines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Line{}
	for rows.Next() {
		var line domain.Line
		if err := rows.Scan(&line.ID, &line.Name); err != nil {
			return nil, err
		}
		result = append(result, line)
	}
	return result, rows.Err()
}

func (r *lookupRepository) ListMachinesByLine(ctx context.Context, lineID int64) ([]domain.Machine, error) {
	const query = `
        SELECT m.id, m.machine_name, l.line_name
        FROM machines m LEFT JOIN lines l ON l.id = m.line_id
        WHERE m.line_id=$1 ORDER BY m.id`
	rows, err := r.db.Query(ctx, query, lineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Machine{}
	for rows.Next() {
		var machine domain.Machine
		if err := rows.Scan(&machine.ID, &machine.Name, &machine.LineName); err != nil {
			return nil, err
		}
		result = append(result, machine)
	}
	return result, rows.Err()
}

func (r *lookupRepository) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.db.Query(ctx, `SELECT id, status_name FROM statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Status{}
	for rows.Next() {
		var status domain.Status
		if err := rows.Scan(&status.ID, &status.Name); err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, rows.Err()
}
