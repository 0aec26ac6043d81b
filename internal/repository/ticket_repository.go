package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/failtrack/internal/domain"
)

// DBTX is the subset of pgxpool.Pool used by repositories.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TicketRepository persists the tickets of a single category.
// Missing rows are reported as pgx.ErrNoRows.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) (int64, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Ticket, error)
	FindAll(ctx context.Context, order domain.ListOrder) ([]domain.TicketRow, error)
	FindCreationTimes(ctx context.Context) ([]time.Time, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]domain.TicketRow, error)
}

var categoryTables = map[domain.Category]string{
	domain.CategoryMaintenance: "maintenance",
	domain.CategoryTooling:     "tooling",
}

type ticketRepository struct {
	db    DBTX
	table string
}

// NewTicketRepository instantiates the repository for category.
func NewTicketRepository(db DBTX, category domain.Category) (TicketRepository, error) {
	table, ok := categoryTables[category]
	if !ok {
		return nil, fmt.Errorf("unknown ticket category %q", category)
	}
	return &ticketRepository{db: db, table: table}, nil
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) (int64, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (applicant_name, fault_description, line_id, machine_id, status_id,
            responsible, failure_solution, created_at, updated_at, closed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`, r.table)
	var id int64
	err := r.db.QueryRow(ctx, query,
		ticket.ApplicantName,
		ticket.FaultDescription,
		ticket.LineID,
		ticket.MachineID,
		ticket.StatusID,
		ticket.Responsible,
		ticket.FailureSolution,
		ticket.CreatedAt,
		ticket.UpdatedAt,
		ticket.ClosedAt,
	).Scan(&id)
	return id, err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	query := fmt.Sprintf(`
        UPDATE %s SET applicant_name=$1, fault_description=$2, line_id=$3, machine_id=$4,
            status_id=$5, responsible=$6, failure_solution=$7, updated_at=$8, closed_at=$9
        WHERE id=$10`, r.table)
	cmd, err := r.db.Exec(ctx, query,
		ticket.ApplicantName,
		ticket.FaultDescription,
		ticket.LineID,
		ticket.MachineID,
		ticket.StatusID,
		ticket.Responsible,
		ticket.FailureSolution,
		ticket.UpdatedAt,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, r.table), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
        SELECT id, applicant_name, fault_description, line_id, machine_id, status_id,
               responsible, failure_solution, created_at, updated_at, closed_at
        FROM %s WHERE id=$1`, r.table)
	var ticket domain.Ticket
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.ApplicantName,
		&ticket.FaultDescription,
		&ticket.LineID,
		&ticket.MachineID,
		&ticket.StatusID,
		&ticket.Responsible,
		&ticket.FailureSolution,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindAll(ctx context.Context, order domain.ListOrder) ([]domain.TicketRow, error) {
	direction := "DESC"
	if order == domain.ListOrderAsc {
		direction = "ASC"
	}
	query := fmt.Sprintf(`%s ORDER BY t.id %s`, r.joinedSelect(), direction)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketRows(rows)
}

func (r *ticketRepository) FindCreationTimes(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT created_at FROM %s WHERE created_at IS NOT NULL`, r.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []time.Time
	for rows.Next() {
		var createdAt time.Time
		if err := rows.Scan(&createdAt); err != nil {
			return nil, err
		}
		result = append(result, createdAt)
	}
	return result, rows.Err()
}

func (r *ticketRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]domain.TicketRow, error) {
	query := fmt.Sprintf(`%s
             WHERE t.created_at IS NOT NULL AND t.created_at >= $1 AND t.created_at < $2
             ORDER BY t.created_at ASC, t.id ASC`, r.joinedSelect())
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketRows(rows)
}

func (r *ticketRepository) joinedSelect() string {
	return fmt.Sprintf(`SELECT t.id, t.applicant_name, l.line_name, m.machine_name, t.fault_description,
                    s.status_name, t.created_at, t.updated_at, t.closed_at
             FROM %s t
             LEFT JOIN lines l ON l.id = t.line_id
             LEFT JOIN machines m ON m.id = t.machine_id
             LEFT JOIN statuses s ON s.id = t.status_id`, r.table)
}

func scanTicketRows(rows pgx.Rows) ([]domain.TicketRow, error) {
	var result []domain.TicketRow
	for rows.Next() {
		var row domain.TicketRow
		if err := rows.Scan(
			&row.ID,
			&row.ApplicantName,
			&row.LineName,
			&row.MachineName,
			&row.FaultDescription,
			&row.StatusName,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
