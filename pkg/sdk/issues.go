package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ListIssuesOptions are the filter and pagination parameters of the public
// issue listing. Zero values are omitted from the query.
type ListIssuesOptions struct {
	Search   string
	Status   string
	Category string
	Page     int
	Limit    int
}

// CreateIssueInput describes a new issue report. TrackingID is optional; a
// random UUID is generated when it is empty.
type CreateIssueInput struct {
	TrackingID  string
	Title       string
	Description string
	Category    string
	Location    string
	Photo       string
	ReportedBy  Reporter
}

// UpdateIssueInput edits a citizen's own issue. Empty fields are left
// untouched by the backend.
type UpdateIssueInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Location    string `json:"location,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

// ListIssues returns one page of the filterable public issue listing.
func (c *Client) ListIssues(ctx context.Context, opts ListIssuesOptions) (*IssuePage, error) {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var page IssuePage
	if err := c.do(ctx, http.MethodGet, "/issues", query, nil, &page); err != nil {
		return nil, err
	}
	if page.Page == 0 {
		page.Page = opts.Page
	}
	if page.Limit == 0 {
		page.Limit = opts.Limit
	}
	return &page, nil
}

// CreateIssue submits a new issue. The report starts pending with normal
// priority and zero upvotes; a tracking UUID is generated when absent.
func (c *Client) CreateIssue(ctx context.Context, input CreateIssueInput) (*Issue, error) {
	if input.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if input.Category == "" {
		return nil, &ValidationError{Field: "category", Message: "category is required"}
	}
	if input.Location == "" {
		return nil, &ValidationError{Field: "location", Message: "location is required"}
	}

	trackingID := input.TrackingID
	if trackingID == "" {
		trackingID = uuid.NewString()
	}

	issue := Issue{
		TrackingID:  trackingID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Photo:       input.Photo,
		ReportedBy:  input.ReportedBy,
		Status:      IssueStatusPending,
		Priority:    "normal",
		Upvotes:     0,
		CreatedAt:   time.Now().UTC(),
	}

	var created struct {
		InsertedID string `json:"insertedId"`
	}
	if err := c.do(ctx, http.MethodPost, "/issues", nil, issue, &created); err != nil {
		return nil, err
	}
	issue.ID = created.InsertedID
	return &issue, nil
}

// GetIssue retrieves one issue by ID.
func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	var issue Issue
	if err := c.do(ctx, http.MethodGet, "/issues/"+url.PathEscape(id), nil, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// UpdateIssue edits the caller's own issue.
func (c *Client) UpdateIssue(ctx context.Context, id string, input UpdateIssueInput) error {
	return c.do(ctx, http.MethodPatch, "/issues/"+url.PathEscape(id), nil, input, nil)
}

// DeleteIssue removes the caller's own issue.
func (c *Client) DeleteIssue(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/issues/"+url.PathEscape(id), nil, nil, nil)
}

// ToggleUpvote toggles the caller's upvote on an issue.
func (c *Client) ToggleUpvote(ctx context.Context, id, userEmail string) error {
	body := map[string]string{"userEmail": userEmail}
	return c.do(ctx, http.MethodPatch, "/issues/upvote/"+url.PathEscape(id), nil, body, nil)
}

// AssignIssue assigns a staff member to an issue (admin only).
func (c *Client) AssignIssue(ctx context.Context, id string, staff AssignedStaff) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/issues/%s/assign", url.PathEscape(id)), nil, staff, nil)
}

// RejectIssue rejects an issue (admin only).
func (c *Client) RejectIssue(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/issues/%s/reject", url.PathEscape(id)), nil, nil, nil)
}

// SetIssueStatus updates the working status of an assigned issue (staff).
func (c *Client) SetIssueStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/issues/status/"+url.PathEscape(id), nil, body, nil)
}

// AssignedIssues returns a staff member's queue.
func (c *Client) AssignedIssues(ctx context.Context, email string) ([]Issue, error) {
	var issues []Issue
	if err := c.do(ctx, http.MethodGet, "/issues/assigned/"+url.PathEscape(email), nil, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// MyIssues returns the issues reported by a citizen.
func (c *Client) MyIssues(ctx context.Context, email string) ([]Issue, error) {
	var issues []Issue
	if err := c.do(ctx, http.MethodGet, "/my-issues/"+url.PathEscape(email), nil, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// RecentResolved returns the homepage feed of recently resolved issues.
func (c *Client) RecentResolved(ctx context.Context) ([]Issue, error) {
	var issues []Issue
	if err := c.do(ctx, http.MethodGet, "/issues/resolved/recent", nil, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Timeline returns the audit trail for an issue.
func (c *Client) Timeline(ctx context.Context, issueID string) ([]TimelineEntry, error) {
	var entries []TimelineEntry
	if err := c.do(ctx, http.MethodGet, "/timelines/"+url.PathEscape(issueID), nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
