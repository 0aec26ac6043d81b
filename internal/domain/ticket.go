package domain

import "time"

// Category identifies one of the parallel ticket record sets.
type Category string

const (
	CategoryMaintenance Category = "maintenance"
	CategoryTooling     Category = "tooling"
)

// Categories lists every supported category.
var Categories = []Category{CategoryMaintenance, CategoryTooling}

// ParseCategory validates a category name coming from a request path.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// ResolvedTimestampField names the ticket field exported as the resolution date.
type ResolvedTimestampField string

const (
	ResolvedFromUpdatedAt ResolvedTimestampField = "updated_at"
	ResolvedFromClosedAt  ResolvedTimestampField = "closed_at"
)

// ListOrder is the id ordering applied to ticket listings.
type ListOrder string

const (
	ListOrderDesc ListOrder = "desc"
	ListOrderAsc  ListOrder = "asc"
)

// CategoryConfig carries every behavior that differs between categories.
type CategoryConfig struct {
	Category               Category
	InitialStatusID        int64
	TerminalStatusID       int64
	ResolvedTimestampField ResolvedTimestampField
	Locale                 string
	DeleteEnabled          bool
	InitUpdatedAtOnCreate  bool
	ListOrder              ListOrder

	// Report presentation.
	Title         string
	SheetName     string
	ExportHeaders [8]string
}

// IsTerminal reports whether statusID closes a ticket.
func (c CategoryConfig) IsTerminal(statusID *int64) bool {
	return statusID != nil && *statusID == c.TerminalStatusID
}

// Ticket is a single equipment-fault report.
type Ticket struct {
	ID               int64      `json:"id"`
	ApplicantName    string     `json:"applicantName"`
	FaultDescription *string    `json:"faultDescription"`
	LineID           *int64     `json:"idLine"`
	MachineID        *int64     `json:"idMachine"`
	StatusID         *int64     `json:"idStatus"`
	Responsible      *string    `json:"responsible"`
	FailureSolution  *string    `json:"failureSolution"`
	CreatedAt        *time.Time `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
	ClosedAt         *time.Time `json:"closingDate"`
}

// TicketView is the denormalized listing row with lookup names joined in.
type TicketView struct {
	ID            int64      `json:"id"`
	ApplicantName string     `json:"applicantName"`
	LineName      *string    `json:"lineName"`
	MachineName   *string    `json:"machineName"`
	Description   string     `json:"description"`
	Status        *string    `json:"status"`
	Date          *time.Time `json:"date"`
	ClosingDate   *time.Time `json:"closingDate"`
}

// TicketRow is a ticket read with its line, machine and status names joined in.
type TicketRow struct {
	ID               int64
	ApplicantName    string
	LineName         *string
	MachineName      *string
	FaultDescription *string
	StatusName       *string
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
	ClosedAt         *time.Time
}
