// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TicketFilters are the server-side filters accepted by the ticket
// list endpoints. Zero values are omitted from the query string, so
// an empty TicketFilters lists everything the caller may see.
type TicketFilters struct {
	Status     TicketStatus
	Priority   Priority
	CategoryID int64
	LocationID int64
	Search     string
}

func (filters TicketFilters) query(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if filters.Status != "" {
		query.Set("status", string(filters.Status))
	}
	if filters.Priority != "" {
		query.Set("priority", string(filters.Priority))
	}
	if filters.CategoryID != 0 {
		query.Set("categoryId", strconv.FormatInt(filters.CategoryID, 10))
	}
	if filters.LocationID != 0 {
		query.Set("locationId", strconv.FormatInt(filters.LocationID, 10))
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	return query
}

// ListTickets returns a page of all tickets visible to the caller.
// Admin-scoped on the backend; agents and customers use the
// AssignedTickets and MyTickets variants.
func (c *Client) ListTickets(ctx context.Context, page, size int, filters TicketFilters) (Page[Ticket], error) {
	return c.ticketPage(ctx, "/tickets", filters.query(page, size))
}

// MyTickets returns the calling customer's own tickets.
func (c *Client) MyTickets(ctx context.Context, page, size int, filters TicketFilters) (Page[Ticket], error) {
	return c.ticketPage(ctx, "/tickets/my-tickets", filters.query(page, size))
}

// AssignedTickets returns tickets assigned to the calling agent.
func (c *Client) AssignedTickets(ctx context.Context, page, size int, filters TicketFilters) (Page[Ticket], error) {
	return c.ticketPage(ctx, "/tickets/assigned-tickets", filters.query(page, size))
}

func (c *Client) ticketPage(ctx context.Context, path string, query url.Values) (Page[Ticket], error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return Page[Ticket]{}, fmt.Errorf("api: listing tickets: %w", err)
	}
	return decodePage[Ticket](body)
}

// GetTicket returns one ticket with its comment thread.
func (c *Client) GetTicket(ctx context.Context, id int64) (*Ticket, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/tickets/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: fetching ticket %d: %w", id, err)
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("api: parsing ticket %d: %w", id, err)
	}
	return &ticket, nil
}

// CreateTicketRequest is the payload for filing a new ticket. The
// location must be a VILLAGE node; the cascade selector guarantees
// this client-side before the request is built.
type CreateTicketRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  int64    `json:"categoryId"`
	LocationID  int64    `json:"locationId"`
	Priority    Priority `json:"priority"`
}

// CreateTicket files a new ticket for the calling customer.
func (c *Client) CreateTicket(ctx context.Context, request CreateTicketRequest) (*Ticket, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/tickets", nil, request)
	if err != nil {
		return nil, fmt.Errorf("api: creating ticket: %w", err)
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("api: parsing created ticket: %w", err)
	}
	return &ticket, nil
}

// UpdateTicketStatus transitions a ticket. The backend takes the new
// status as a query parameter on a bodyless PUT, not in a JSON body.
func (c *Client) UpdateTicketStatus(ctx context.Context, id int64, status TicketStatus) (*Ticket, error) {
	query := url.Values{}
	query.Set("status", string(status))

	body, err := c.doRequest(ctx, http.MethodPut, "/tickets/"+strconv.FormatInt(id, 10)+"/status", query, nil)
	if err != nil {
		return nil, fmt.Errorf("api: updating status of ticket %d: %w", id, err)
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("api: parsing updated ticket %d: %w", id, err)
	}
	return &ticket, nil
}

// AssignTicket assigns a ticket to an agent. The agent travels as a
// path parameter on a bodyless PUT.
func (c *Client) AssignTicket(ctx context.Context, id, agentID int64) (*Ticket, error) {
	path := "/tickets/" + strconv.FormatInt(id, 10) + "/assign/" + strconv.FormatInt(agentID, 10)
	body, err := c.doRequest(ctx, http.MethodPut, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("api: assigning ticket %d to agent %d: %w", id, agentID, err)
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("api: parsing assigned ticket %d: %w", id, err)
	}
	return &ticket, nil
}
