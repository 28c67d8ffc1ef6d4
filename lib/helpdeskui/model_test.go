// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/KhalidiZib/supporthub/lib/api"
	"github.com/KhalidiZib/supporthub/lib/authflow"
	"github.com/KhalidiZib/supporthub/lib/cascade"
	"github.com/KhalidiZib/supporthub/lib/session"
	"github.com/KhalidiZib/supporthub/lib/tui"
)

// testModel builds a model against a client that never gets called:
// these tests drive Update with messages directly and discard the
// returned commands instead of executing them.
func testModel(t *testing.T, role api.Role) *Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: "http://127.0.0.1:1/api",
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	sessions, err := session.NewManager(session.ManagerConfig{
		StateDir: t.TempDir(),
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if role != "" {
		err := sessions.Login(&api.LoginResult{
			Token: "opaque-token",
			ID:    7,
			Email: "user@example.com",
			Name:  "Test User",
			Role:  role,
		})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
	}

	return New(Config{
		Client:   client,
		Sessions: sessions,
		PageSize: 5,
		Logger:   logger,
	})
}

func keyRunes(runes string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)}
}

func ticketPageOf(titles ...string) api.Page[api.Ticket] {
	page := api.Page[api.Ticket]{
		TotalElements: int64(len(titles)),
		TotalPages:    1,
	}
	for index, title := range titles {
		page.Content = append(page.Content, api.Ticket{
			ID:       int64(index + 1),
			Title:    title,
			Status:   api.StatusOpen,
			Priority: api.PriorityMedium,
		})
	}
	return page
}

func TestModelInitialScreen(t *testing.T) {
	t.Run("signed out starts on login", func(t *testing.T) {
		model := testModel(t, "")
		if model.screen != screenLogin {
			t.Errorf("screen = %d, want screenLogin", model.screen)
		}
	})
	t.Run("signed in starts on list", func(t *testing.T) {
		model := testModel(t, api.RoleCustomer)
		if model.screen != screenList {
			t.Errorf("screen = %d, want screenList", model.screen)
		}
	})
}

func TestLoginRejectionStaysOnLoginScreen(t *testing.T) {
	model := testModel(t, "")
	model.submitting = true

	updated, _ := model.Update(credentialsResultMsg{err: authflow.ErrInvalidCredentials})
	model = updated.(*Model)

	if model.screen != screenLogin {
		t.Errorf("screen = %d, want screenLogin", model.screen)
	}
	if model.submitting {
		t.Error("submitting still set after rejection")
	}
	if model.flowErr == "" {
		t.Error("expected an error message after rejection")
	}
}

func TestStaleTicketPageDiscarded(t *testing.T) {
	model := testModel(t, api.RoleAdmin)

	first := model.tickets.Reload()
	second := model.tickets.Reload()

	// The older request resolves after the newer one was issued.
	updated, _ := model.Update(ticketPageMsg{request: first, page: ticketPageOf("stale")})
	model = updated.(*Model)
	if items := model.tickets.Items(); len(items) != 0 {
		t.Fatalf("stale page was applied: %d items", len(items))
	}
	if !model.tickets.Loading() {
		t.Error("list settled on a stale response")
	}

	updated, _ = model.Update(ticketPageMsg{request: second, page: ticketPageOf("fresh")})
	model = updated.(*Model)
	items := model.tickets.Items()
	if len(items) != 1 || items[0].Title != "fresh" {
		t.Fatalf("current page not applied, items = %+v", items)
	}
}

func TestTicketPageClampsCursor(t *testing.T) {
	model := testModel(t, api.RoleAdmin)
	model.cursor = 4

	request := model.tickets.Reload()
	updated, _ := model.Update(ticketPageMsg{request: request, page: ticketPageOf("only")})
	model = updated.(*Model)

	if model.cursor != 0 {
		t.Errorf("cursor = %d, want 0", model.cursor)
	}
}

func TestTicketMsgOpensDetail(t *testing.T) {
	model := testModel(t, api.RoleCustomer)
	model.detailOffset = 12

	ticket := &api.Ticket{ID: 3, Title: "broken printer", Status: api.StatusOpen}
	updated, _ := model.Update(ticketMsg{ticket: ticket})
	model = updated.(*Model)

	if model.screen != screenDetail {
		t.Errorf("screen = %d, want screenDetail", model.screen)
	}
	if model.ticket == nil || model.ticket.ID != 3 {
		t.Errorf("ticket = %+v", model.ticket)
	}
	if model.detailOffset != 0 {
		t.Errorf("detailOffset = %d, want reset to 0", model.detailOffset)
	}
}

func TestSessionExpiredReturnsToLogin(t *testing.T) {
	model := testModel(t, api.RoleAgent)
	model.screen = screenDetail
	model.ticket = &api.Ticket{ID: 1}
	model.unread = 4

	updated, _ := model.Update(SessionExpiredMsg{})
	model = updated.(*Model)

	if model.screen != screenLogin {
		t.Errorf("screen = %d, want screenLogin", model.screen)
	}
	if model.ticket != nil {
		t.Error("ticket state survived session expiry")
	}
	if model.unread != 0 {
		t.Errorf("unread = %d, want 0 after expiry", model.unread)
	}
	if model.flowErr == "" {
		t.Error("expected an explanation on the login screen")
	}
}

func TestUnreadBadgeInHeader(t *testing.T) {
	model := testModel(t, api.RoleCustomer)

	updated, _ := model.Update(UnreadMsg{Count: 3})
	model = updated.(*Model)

	header := ansi.Strip(model.viewHeader())
	if !strings.Contains(header, "3") {
		t.Errorf("header missing unread count: %q", header)
	}

	updated, _ = model.Update(UnreadMsg{Count: 0})
	model = updated.(*Model)
	header = ansi.Strip(model.viewHeader())
	if strings.Contains(header, "●") {
		t.Errorf("badge shown at zero unread: %q", header)
	}
}

func TestOptimisticComment(t *testing.T) {
	t.Run("placeholder appended immediately", func(t *testing.T) {
		model := testModel(t, api.RoleCustomer)
		model.screen = screenDetail
		model.ticket = &api.Ticket{ID: 9}

		model.postComment("on my way")

		comments := model.ticket.Comments
		if len(comments) != 1 {
			t.Fatalf("comments = %d, want 1 placeholder", len(comments))
		}
		if comments[0].ID >= 0 {
			t.Errorf("placeholder ID = %d, want negative", comments[0].ID)
		}
		if comments[0].Content != "on my way" {
			t.Errorf("content = %q", comments[0].Content)
		}
	})

	t.Run("server copy replaces placeholder", func(t *testing.T) {
		model := testModel(t, api.RoleCustomer)
		model.screen = screenDetail
		model.ticket = &api.Ticket{ID: 9}
		model.postComment("on my way")
		localID := model.ticket.Comments[0].ID

		serverCopy := &api.Comment{ID: 501, TicketID: 9, Content: "on my way"}
		updated, _ := model.Update(commentResultMsg{ticketID: 9, localID: localID, comment: serverCopy})
		model = updated.(*Model)

		comments := model.ticket.Comments
		if len(comments) != 1 || comments[0].ID != 501 {
			t.Errorf("comments = %+v, want server copy", comments)
		}
	})

	t.Run("failure rolls the placeholder back", func(t *testing.T) {
		model := testModel(t, api.RoleCustomer)
		model.screen = screenDetail
		model.ticket = &api.Ticket{ID: 9}
		model.postComment("on my way")
		localID := model.ticket.Comments[0].ID

		updated, _ := model.Update(commentResultMsg{ticketID: 9, localID: localID, err: io.ErrUnexpectedEOF})
		model = updated.(*Model)

		if len(model.ticket.Comments) != 0 {
			t.Errorf("comments = %+v, want placeholder removed", model.ticket.Comments)
		}
		if model.statusBar == "" {
			t.Error("expected a failure notice in the status bar")
		}
	})

	t.Run("result after navigating away is ignored", func(t *testing.T) {
		model := testModel(t, api.RoleCustomer)
		model.screen = screenDetail
		model.ticket = &api.Ticket{ID: 9}
		model.postComment("on my way")
		localID := model.ticket.Comments[0].ID

		model.ticket = &api.Ticket{ID: 10}
		updated, _ := model.Update(commentResultMsg{ticketID: 9, localID: localID, err: io.ErrUnexpectedEOF})
		model = updated.(*Model)

		if model.ticket.ID != 10 {
			t.Errorf("current ticket changed: %+v", model.ticket)
		}
	})
}

func TestCreateKeyGatedToCustomers(t *testing.T) {
	t.Run("customer opens the form", func(t *testing.T) {
		model := testModel(t, api.RoleCustomer)
		updated, command := model.Update(keyRunes("N"))
		model = updated.(*Model)

		if model.screen != screenCreate {
			t.Errorf("screen = %d, want screenCreate", model.screen)
		}
		if command == nil {
			t.Error("expected category and location fetches")
		}
	})
	t.Run("agent stays on the list", func(t *testing.T) {
		model := testModel(t, api.RoleAgent)
		updated, _ := model.Update(keyRunes("N"))
		model = updated.(*Model)

		if model.screen != screenList {
			t.Errorf("screen = %d, want screenList", model.screen)
		}
	})
}

func TestFilterDropdownAppliesSelection(t *testing.T) {
	model := testModel(t, api.RoleAdmin)

	updated, _ := model.Update(keyRunes("s"))
	model = updated.(*Model)
	if model.dropdown == nil {
		t.Fatal("filter dropdown did not open")
	}

	// Move past "any" to the first real status, then confirm.
	updated, _ = model.Update(keyRunes("j"))
	model = updated.(*Model)
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(*Model)

	if model.dropdown != nil {
		t.Error("dropdown still open after selection")
	}
	if got := model.tickets.Filters().Status; got != api.StatusOpen {
		t.Errorf("status filter = %q, want %q", got, api.StatusOpen)
	}
	if command == nil {
		t.Error("expected a list refetch after filtering")
	}
}

func TestFormLocationCascade(t *testing.T) {
	model := testModel(t, api.RoleCustomer)
	model.screen = screenCreate
	model.form = newCreateForm()

	// Provinces arrive.
	provinces := []api.LocationNode{{ID: 1, Name: "Kigali City"}, {ID: 2, Name: "Northern"}}
	updated, _ := model.Update(locationsMsg{fetch: cascade.ChildFetch{Level: 0}, nodes: provinces})
	model = updated.(*Model)
	if got := model.form.selector.Options(0); len(got) != 2 {
		t.Fatalf("province options = %d, want 2", len(got))
	}

	// Selecting a province requests its districts.
	updated, command := model.applyFormDropdown("location-0", tui.DropdownOption{Label: "Kigali City", Value: "1"})
	model = updated.(*Model)
	if command == nil {
		t.Fatal("expected a district fetch")
	}
	if model.form.selector.Selected(0) != 1 {
		t.Errorf("province selection = %d, want 1", model.form.selector.Selected(0))
	}

	// A stale district response (issued before a reselection) is
	// discarded by the generation check.
	staleFetch := cascade.ChildFetch{Level: 1, ParentID: 1, Generation: 0}
	updated, _ = model.Update(locationsMsg{fetch: staleFetch, nodes: []api.LocationNode{{ID: 99, Name: "Stale"}}})
	model = updated.(*Model)
	if options := model.form.selector.Options(1); len(options) != 0 {
		t.Errorf("stale district options installed: %+v", options)
	}
}

func TestSubmitFormValidation(t *testing.T) {
	model := testModel(t, api.RoleCustomer)
	model.screen = screenCreate
	model.form = newCreateForm()
	model.form.focus = focusSubmit

	// Nothing filled in: no network call, an error instead.
	_, command := model.submitForm()
	if command != nil {
		t.Error("expected validation to block submission")
	}
	if model.form.errText == "" {
		t.Error("expected a validation message")
	}

	// Complete everything except the location hierarchy.
	model.form.titleInput.SetValue("no network")
	model.form.descriptionInput.SetValue("ethernet port dead")
	model.form.categoryID = 2
	_, command = model.submitForm()
	if command != nil {
		t.Error("expected incomplete location to block submission")
	}
}
