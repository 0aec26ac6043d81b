package domain

// Line is a production line.
type Line struct {
	ID   int64  `json:"id"`
	Name string `json:"lineName"`
}

// Machine belongs to at most one line.
type Machine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"machine"`
	LineName *string `json:"line"`
}

// Status is a ticket status label.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"status"`
}
