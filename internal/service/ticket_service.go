package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/events"
	"github.com/spec-kit/failtrack/internal/repository"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

// TicketService applies the ticket lifecycle for one category.
type TicketService struct {
	cfg         domain.CategoryConfig
	tickets     repository.TicketRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	now         func() time.Time
	placeholder string
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Config                 domain.CategoryConfig
	TicketRepo             repository.TicketRepository
	Dispatcher             events.Dispatcher
	Logger                 *zap.Logger
	Clock                  func() time.Time
	DescriptionPlaceholder string
}

// TicketCreateInput describes a new fault report.
type TicketCreateInput struct {
	ApplicantName    string
	FaultDescription *string
	LineID           *int64
	MachineID        *int64
}

// TicketUpdateInput carries editable fields. Nil fields keep their current value.
type TicketUpdateInput struct {
	ApplicantName    *string
	FaultDescription *string
	Responsible      *string
	FailureSolution  *string
	LineID           *int64
	MachineID        *int64
	StatusID         *int64
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		// Postgres TIMESTAMPTZ keeps microsecond precision.
		clock = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
	}
	return &TicketService{
		cfg:         deps.Config,
		tickets:     deps.TicketRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger.With(zap.String("category", string(deps.Config.Category))),
		now:         clock,
		placeholder: deps.DescriptionPlaceholder,
	}
}

// CreateTicket records a new ticket in the initial status.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	applicant := strings.TrimSpace(input.ApplicantName)
	if applicant == "" {
		return nil, apperrors.NewValidationError("applicantName required", map[string]any{"field": "applicantName"})
	}

	now := s.now()
	status := s.cfg.InitialStatusID
	ticket := &domain.Ticket{
		ApplicantName:    applicant,
		FaultDescription: normalizeText(input.FaultDescription),
		LineID:           input.LineID,
		MachineID:        input.MachineID,
		StatusID:         &status,
		CreatedAt:        &now,
	}
	if s.cfg.InitUpdatedAtOnCreate {
		updated := now
		ticket.UpdatedAt = &updated
	}

	id, err := s.tickets.Insert(ctx, ticket)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	ticket.ID = id

	s.publishChanged(ctx)
	return ticket, nil
}

// UpdateTicket overwrites the provided fields and derives the closing date.
func (s *TicketService) UpdateTicket(ctx context.Context, id int64, input TicketUpdateInput) (*domain.Ticket, error) {
	if input.ApplicantName != nil && strings.TrimSpace(*input.ApplicantName) == "" {
		return nil, apperrors.NewValidationError("applicantName cannot be empty", map[string]any{"field": "applicantName"})
	}

	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, s.repoError(err, id)
	}

	if input.ApplicantName != nil {
		ticket.ApplicantName = strings.TrimSpace(*input.ApplicantName)
	}
	if input.FaultDescription != nil {
		ticket.FaultDescription = normalizeText(input.FaultDescription)
	}
	if input.Responsible != nil {
		ticket.Responsible = normalizeText(input.Responsible)
	}
	if input.FailureSolution != nil {
		ticket.FailureSolution = normalizeText(input.FailureSolution)
	}
	if input.LineID != nil {
		ticket.LineID = input.LineID
	}
	if input.MachineID != nil {
		ticket.MachineID = input.MachineID
	}
	if input.StatusID != nil {
		ticket.StatusID = input.StatusID
	}

	now := s.now()
	if ticket.CreatedAt != nil && now.Before(*ticket.CreatedAt) {
		now = *ticket.CreatedAt
	}
	ticket.UpdatedAt = &now
	if ticket.ClosedAt == nil && s.cfg.IsTerminal(ticket.StatusID) {
		closed := now
		ticket.ClosedAt = &closed
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, s.repoError(err, id)
	}

	s.publishChanged(ctx)
	return ticket, nil
}

// DeleteTicket removes a ticket permanently when the category allows it.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) error {
	if !s.cfg.DeleteEnabled {
		return apperrors.NewValidationError("delete is not supported for this category",
			map[string]any{"category": s.cfg.Category})
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return s.repoError(err, id)
	}
	return nil
}

// GetTicket returns a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, s.repoError(err, id)
	}
	return ticket, nil
}

// ListTickets returns the listing projection in the configured id order.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.TicketView, error) {
	rows, err := s.tickets.FindAll(ctx, s.cfg.ListOrder)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	views := make([]domain.TicketView, 0, len(rows))
	for _, row := range rows {
		description := s.placeholder
		if row.FaultDescription != nil {
			description = *row.FaultDescription
		}
		views = append(views, domain.TicketView{
			ID:            row.ID,
			ApplicantName: row.ApplicantName,
			LineName:      row.LineName,
			MachineName:   row.MachineName,
			Description:   description,
			Status:        row.StatusName,
			Date:          row.CreatedAt,
			ClosingDate:   row.ClosedAt,
		})
	}
	return views, nil
}

func (s *TicketService) repoError(err error, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id, "category": s.cfg.Category})
	}
	return apperrors.NewUnavailable(err)
}

// publishChanged enqueues the change notification. Failures never reach the caller.
func (s *TicketService) publishChanged(ctx context.Context) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketsChanged,
		Category:  s.cfg.Category,
		Timestamp: s.now(),
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("change notification dropped", zap.String("event_id", event.ID), zap.Error(err))
	}
}

func normalizeText(val *string) *string {
	if val == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
