// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"
)

func TestTicketFiltersQuery(t *testing.T) {
	cases := []struct {
		name    string
		filters TicketFilters
		want    url.Values
	}{
		{
			name:    "empty filters send only pagination",
			filters: TicketFilters{},
			want:    url.Values{"page": {"0"}, "size": {"10"}},
		},
		{
			name: "all filters present",
			filters: TicketFilters{
				Status:     StatusInProgress,
				Priority:   PriorityHigh,
				CategoryID: 3,
				LocationID: 41,
				Search:     "water",
			},
			want: url.Values{
				"page": {"0"}, "size": {"10"},
				"status": {"IN_PROGRESS"}, "priority": {"HIGH"},
				"categoryId": {"3"}, "locationId": {"41"}, "search": {"water"},
			},
		},
		{
			name:    "partial filters omit the rest",
			filters: TicketFilters{Status: StatusOpen},
			want:    url.Values{"page": {"0"}, "size": {"10"}, "status": {"OPEN"}},
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			got := test.filters.query(0, 10)
			if got.Encode() != test.want.Encode() {
				t.Errorf("query = %v, want %v", got, test.want)
			}
		})
	}
}

func TestListTicketEndpoints(t *testing.T) {
	cases := []struct {
		name     string
		call     func(ctx context.Context, c *Client) (Page[Ticket], error)
		wantPath string
	}{
		{
			name: "admin list",
			call: func(ctx context.Context, c *Client) (Page[Ticket], error) {
				return c.ListTickets(ctx, 1, 20, TicketFilters{})
			},
			wantPath: "/api/tickets",
		},
		{
			name: "customer list",
			call: func(ctx context.Context, c *Client) (Page[Ticket], error) {
				return c.MyTickets(ctx, 1, 20, TicketFilters{})
			},
			wantPath: "/api/tickets/my-tickets",
		},
		{
			name: "agent list",
			call: func(ctx context.Context, c *Client) (Page[Ticket], error) {
				return c.AssignedTickets(ctx, 1, 20, TicketFilters{})
			},
			wantPath: "/api/tickets/assigned-tickets",
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			var gotPath, gotPage string
			client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotPage = r.URL.Query().Get("page")
				w.Write([]byte(`{"content": [], "page": 1, "size": 20, "totalElements": 0, "totalPages": 0}`))
			})

			page, err := test.call(context.Background(), client)
			if err != nil {
				t.Fatalf("list call: %v", err)
			}
			if gotPath != test.wantPath {
				t.Errorf("path = %q, want %q", gotPath, test.wantPath)
			}
			if gotPage != "1" {
				t.Errorf("page query = %q, want 1", gotPage)
			}
			if page.Content == nil {
				t.Error("empty list decoded to nil content")
			}
		})
	}
}

func TestUpdateTicketStatusUsesQueryParameter(t *testing.T) {
	var gotMethod, gotPath, gotStatus string
	var gotBody int64
	client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		gotBody = r.ContentLength
		w.Write([]byte(`{"id": 12, "status": "RESOLVED"}`))
	})

	ticket, err := client.UpdateTicketStatus(context.Background(), 12, StatusResolved)
	if err != nil {
		t.Fatalf("UpdateTicketStatus: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/tickets/12/status" {
		t.Errorf("request = %s %s, want PUT /api/tickets/12/status", gotMethod, gotPath)
	}
	if gotStatus != "RESOLVED" {
		t.Errorf("status query = %q, want RESOLVED", gotStatus)
	}
	if gotBody > 0 {
		t.Errorf("status update sent a body of %d bytes, want none", gotBody)
	}
	if ticket.Status != StatusResolved {
		t.Errorf("ticket status = %q", ticket.Status)
	}
}

func TestAssignTicketUsesPathParameter(t *testing.T) {
	var gotMethod, gotPath string
	client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": 12, "assignedAgent": {"id": 30, "role": "AGENT"}}`))
	})

	ticket, err := client.AssignTicket(context.Background(), 12, 30)
	if err != nil {
		t.Fatalf("AssignTicket: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/tickets/12/assign/30" {
		t.Errorf("request = %s %s, want PUT /api/tickets/12/assign/30", gotMethod, gotPath)
	}
	if ticket.AssignedAgent == nil || ticket.AssignedAgent.ID != 30 {
		t.Errorf("assigned agent not decoded: %+v", ticket.AssignedAgent)
	}
}

func TestTicketTimestampForms(t *testing.T) {
	client := testClient(t, ClientConfig{}, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1, "createdAt": "2026-03-01T09:30:00", "comments": [
			{"id": 2, "ticketId": 1, "content": "hi", "createdAt": "2026-03-01T09:31:02.5Z"}
		]}`))
	})

	ticket, err := client.GetTicket(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetTicket: %v", err)
	}
	if ticket.CreatedAt.IsZero() {
		t.Error("zone-less timestamp not parsed")
	}
	if len(ticket.Comments) != 1 || ticket.Comments[0].CreatedAt.IsZero() {
		t.Error("RFC 3339 timestamp not parsed")
	}
}
