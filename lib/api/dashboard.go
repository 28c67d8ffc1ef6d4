// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AdminDashboard is the system-wide summary shown to administrators.
type AdminDashboard struct {
	TotalTickets    int64 `json:"totalTickets"`
	OpenTickets     int64 `json:"openTickets"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalCategories int64 `json:"totalCategories"`
}

// AgentDashboard summarizes the calling agent's assigned workload.
type AgentDashboard struct {
	AssignedTickets   int64 `json:"assignedTickets"`
	OpenTickets       int64 `json:"openTickets"`
	InProgressTickets int64 `json:"inProgressTickets"`
	ResolvedTickets   int64 `json:"resolvedTickets"`
}

// CustomerDashboard summarizes the calling customer's own tickets,
// with the most recent ones inlined.
type CustomerDashboard struct {
	TotalTickets      int64    `json:"totalTickets"`
	OpenTickets       int64    `json:"openTickets"`
	InProgressTickets int64    `json:"inProgressTickets"`
	ResolvedTickets   int64    `json:"resolvedTickets"`
	RecentTickets     []Ticket `json:"recentTickets"`
}

// FetchAdminDashboard returns the admin summary. The backend enforces
// the role; a non-admin caller gets a 403.
func (c *Client) FetchAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/dashboard/admin", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching admin dashboard: %w", err)
	}
	var dashboard AdminDashboard
	if err := json.Unmarshal(body, &dashboard); err != nil {
		return nil, fmt.Errorf("api: parsing admin dashboard: %w", err)
	}
	return &dashboard, nil
}

// FetchAgentDashboard returns the agent workload summary.
func (c *Client) FetchAgentDashboard(ctx context.Context) (*AgentDashboard, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/dashboard/agent", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching agent dashboard: %w", err)
	}
	var dashboard AgentDashboard
	if err := json.Unmarshal(body, &dashboard); err != nil {
		return nil, fmt.Errorf("api: parsing agent dashboard: %w", err)
	}
	return &dashboard, nil
}

// FetchCustomerDashboard returns the customer ticket summary.
func (c *Client) FetchCustomerDashboard(ctx context.Context) (*CustomerDashboard, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/dashboard/customer", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching customer dashboard: %w", err)
	}
	var dashboard CustomerDashboard
	if err := json.Unmarshal(body, &dashboard); err != nil {
		return nil, fmt.Errorf("api: parsing customer dashboard: %w", err)
	}
	return &dashboard, nil
}
