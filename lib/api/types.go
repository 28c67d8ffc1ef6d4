// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"strings"
	"time"
)

// Role is a backend user role. The backend enforces RBAC; the client
// mirrors it only for routing and display.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleAgent    Role = "AGENT"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole validates a role string from user input or the wire.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(value))
	switch role {
	case RoleAdmin, RoleAgent, RoleCustomer:
		return role, nil
	}
	return "", fmt.Errorf("api: unknown role %q", value)
}

// TicketStatus is the server-owned ticket lifecycle state.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusClosed     TicketStatus = "CLOSED"
)

// TicketStatuses lists all statuses in lifecycle order, for dropdowns
// and flag validation.
var TicketStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// Priority is the ticket priority scale.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists all priorities from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// LocationType identifies a level in the five-tier administrative
// hierarchy. A node of any type other than PROVINCE has exactly one
// parent of the type immediately above it.
type LocationType string

const (
	LocationProvince LocationType = "PROVINCE"
	LocationDistrict LocationType = "DISTRICT"
	LocationSector   LocationType = "SECTOR"
	LocationCell     LocationType = "CELL"
	LocationVillage  LocationType = "VILLAGE"
)

// LocationTypes lists the hierarchy from top to bottom.
var LocationTypes = []LocationType{
	LocationProvince, LocationDistrict, LocationSector, LocationCell, LocationVillage,
}

// Timestamp wraps time.Time to accept both RFC 3339 timestamps and
// the zone-less "2006-01-02T15:04:05" form the backend emits for
// LocalDateTime fields. Zone-less values are interpreted as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("api: unparseable timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// User is a backend account. Agents and admins see other users;
// customers only ever see themselves and their assigned agent.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt Timestamp `json:"createdAt,omitzero"`
}

// Category is a ticket classification owned by admins.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LocationNode is one node of the strict five-level location tree.
type LocationNode struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Type     LocationType `json:"type"`
	ParentID int64        `json:"parentId,omitempty"`
}

// Comment is a message on a ticket's thread.
type Comment struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticketId"`
	Content   string    `json:"content"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt Timestamp `json:"createdAt,omitzero"`
}

// Ticket is the central entity. The client never mutates a ticket
// locally except to append newly posted comments; every other change
// round-trips through the backend.
type Ticket struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        TicketStatus  `json:"status"`
	Priority      Priority      `json:"priority"`
	Category      *Category     `json:"category,omitempty"`
	Location      *LocationNode `json:"location,omitempty"`
	Customer      *User         `json:"customer,omitempty"`
	AssignedAgent *User         `json:"assignedAgent,omitempty"`
	Comments      []Comment     `json:"comments,omitempty"`
	CreatedAt     Timestamp     `json:"createdAt,omitzero"`
}

// Notification is a server-generated alert for the current user.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt Timestamp `json:"createdAt,omitzero"`
}
