// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"testing"
)

func TestDashboardEndpoints(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		var gotPath string
		client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"totalTickets": 120, "openTickets": 14, "totalUsers": 60, "totalCategories": 8}`))
		})

		dashboard, err := client.FetchAdminDashboard(context.Background())
		if err != nil {
			t.Fatalf("FetchAdminDashboard: %v", err)
		}
		if gotPath != "/api/dashboard/admin" {
			t.Errorf("path = %q, want /api/dashboard/admin", gotPath)
		}
		if dashboard.TotalTickets != 120 || dashboard.TotalUsers != 60 {
			t.Errorf("decoded %+v, want totals 120/60", dashboard)
		}
	})

	t.Run("agent", func(t *testing.T) {
		var gotPath string
		client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"assignedTickets": 9, "openTickets": 2, "inProgressTickets": 3, "resolvedTickets": 4}`))
		})

		dashboard, err := client.FetchAgentDashboard(context.Background())
		if err != nil {
			t.Fatalf("FetchAgentDashboard: %v", err)
		}
		if gotPath != "/api/dashboard/agent" {
			t.Errorf("path = %q, want /api/dashboard/agent", gotPath)
		}
		if dashboard.AssignedTickets != 9 || dashboard.ResolvedTickets != 4 {
			t.Errorf("decoded %+v, want 9 assigned and 4 resolved", dashboard)
		}
	})

	t.Run("customer with recent tickets", func(t *testing.T) {
		var gotPath string
		client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{
				"totalTickets": 5, "openTickets": 1,
				"inProgressTickets": 1, "resolvedTickets": 3,
				"recentTickets": [{"id": 77, "title": "No water", "status": "OPEN", "priority": "HIGH"}]
			}`))
		})

		dashboard, err := client.FetchCustomerDashboard(context.Background())
		if err != nil {
			t.Fatalf("FetchCustomerDashboard: %v", err)
		}
		if gotPath != "/api/dashboard/customer" {
			t.Errorf("path = %q, want /api/dashboard/customer", gotPath)
		}
		if len(dashboard.RecentTickets) != 1 || dashboard.RecentTickets[0].ID != 77 {
			t.Errorf("recent tickets = %+v, want one ticket with ID 77", dashboard.RecentTickets)
		}
	})

	t.Run("forbidden role surfaces the status", func(t *testing.T) {
		client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message": "admin only"}`))
		})

		_, err := client.FetchAdminDashboard(context.Background())
		if !IsStatus(err, http.StatusForbidden) {
			t.Fatalf("err = %v, want a 403 *Error", err)
		}
	})
}
