package sdk

import (
	"encoding/json"
	"time"
)

// Role is the caller's authorization tier. The set is closed; anything the
// backend returns outside of it collapses to RoleUnresolved so gating logic
// can never mistake a typo for a valid tier.
type Role int

const (
	RoleUnresolved Role = iota
	RoleCitizen
	RoleStaff
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCitizen: "citizen",
	RoleStaff:   "staff",
	RoleAdmin:   "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unresolved"
}

// ParseRole maps a backend role string to a Role. Unknown strings map to
// RoleUnresolved, never to an elevated default.
func ParseRole(s string) Role {
	switch s {
	case "citizen":
		return RoleCitizen
	case "staff":
		return RoleStaff
	case "admin":
		return RoleAdmin
	default:
		return RoleUnresolved
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// User is a backend user record (role + profile).
type User struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Photo   string `json:"photo,omitempty"`
	Role    Role   `json:"role,omitempty"`
	Blocked bool   `json:"blocked,omitempty"`
}

// Reporter identifies the citizen who filed an issue.
type Reporter struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// AssignedStaff identifies the staff member working an issue.
type AssignedStaff struct {
	ID    string `json:"staffId"`
	Name  string `json:"staffName"`
	Email string `json:"staffEmail"`
	Photo string `json:"staffPhoto,omitempty"`
}

// Issue is a reported infrastructure problem.
type Issue struct {
	ID          string         `json:"_id,omitempty"`
	TrackingID  string         `json:"trackingId,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Location    string         `json:"location"`
	Photo       string         `json:"photo,omitempty"`
	ReportedBy  Reporter       `json:"reportedBy"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	Upvotes     int            `json:"upvotes"`
	Assigned    *AssignedStaff `json:"assignedStaff,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Issue lifecycle statuses used by the backend.
const (
	IssueStatusPending    = "pending"
	IssueStatusInProgress = "in-progress"
	IssueStatusResolved   = "resolved"
	IssueStatusClosed     = "closed"
	IssueStatusRejected   = "rejected"
)

// IssuePage is the paginated envelope returned by the issue listing.
type IssuePage struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// TotalPages derives the page count from the server-side total.
func (p IssuePage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// TimelineEntry is one step of an issue's audit trail.
type TimelineEntry struct {
	ID        string    `json:"_id,omitempty"`
	IssueID   string    `json:"issueId"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Payment is a recorded payment (subscription or issue boost).
type Payment struct {
	ID            string    `json:"_id,omitempty"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	TransactionID string    `json:"transactionId"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	IssueID       string    `json:"issueId,omitempty"`
	Status        string    `json:"status"`
}

// AdminStats aggregates the community dashboard numbers.
type AdminStats struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalIssues    int     `json:"totalIssues"`
	PendingIssues  int     `json:"pendingIssues"`
	ResolvedIssues int     `json:"resolvedIssues"`
	Revenue        float64 `json:"revenue"`
}

// StaffStats summarizes one staff member's queue.
type StaffStats struct {
	TotalAssigned int `json:"totalAssigned"`
	TotalResolved int `json:"totalResolved"`
	TotalClosed   int `json:"totalClosed"`
}
