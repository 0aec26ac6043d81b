package dto

import (
	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	ApplicantName    string  `json:"applicantName"`
	FaultDescription *string `json:"faultDescription"`
	LineID           *int64  `json:"idLine"`
	MachineID        *int64  `json:"idMachine"`
}

// ToInput maps the payload onto the engine input.
func (r CreateTicketRequest) ToInput() service.TicketCreateInput {
	return service.TicketCreateInput{
		ApplicantName:    r.ApplicantName,
		FaultDescription: r.FaultDescription,
		LineID:           r.LineID,
		MachineID:        r.MachineID,
	}
}

// UpdateTicketRequest payload. Omitted fields keep their stored values.
type UpdateTicketRequest struct {
	ApplicantName    *string `json:"applicantName"`
	FaultDescription *string `json:"faultDescription"`
	Responsible      *string `json:"responsible"`
	FailureSolution  *string `json:"failureSolution"`
	LineID           *int64  `json:"idLine"`
	MachineID        *int64  `json:"idMachine"`
	StatusID         *int64  `json:"idStatus"`
}

// ToInput maps the payload onto the engine input.
func (r UpdateTicketRequest) ToInput() service.TicketUpdateInput {
	return service.TicketUpdateInput{
		ApplicantName:    r.ApplicantName,
		FaultDescription: r.FaultDescription,
		Responsible:      r.Responsible,
		FailureSolution:  r.FailureSolution,
		LineID:           r.LineID,
		MachineID:        r.MachineID,
		StatusID:         r.StatusID,
	}
}

// Envelope is the body of every mutation response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// TicketListResponse wraps the listing projection.
type TicketListResponse struct {
	Category domain.Category     `json:"category"`
	Items    []domain.TicketView `json:"items"`
}
