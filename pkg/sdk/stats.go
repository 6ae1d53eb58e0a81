package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// GetAdminStats returns the aggregate community dashboard numbers.
func (c *Client) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin-stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetStaffStats summarizes one staff member's queue.
func (c *Client) GetStaffStats(ctx context.Context, email string) (*StaffStats, error) {
	var stats StaffStats
	if err := c.do(ctx, http.MethodGet, "/staff-stats/"+url.PathEscape(email), nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
