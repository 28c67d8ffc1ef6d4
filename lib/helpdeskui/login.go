// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package helpdeskui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KhalidiZib/supporthub/lib/authflow"
)

// updateLogin handles keyboard input on the credential and step-up
// screens.
func (model *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return model, tea.Quit

	case "esc":
		if model.screen == screenStepUp {
			// Abandon the pending second factor and return to the
			// credential form.
			model.flow.Cancel()
			model.screen = screenLogin
			model.codeInput.SetValue("")
			model.flowErr = ""
		}
		return model, nil

	case "tab", "shift+tab", "up", "down":
		if model.screen == screenLogin {
			model.loginFocus = 1 - model.loginFocus
			if model.loginFocus == 0 {
				model.emailInput.Focus()
				model.passwordInput.Blur()
			} else {
				model.emailInput.Blur()
				model.passwordInput.Focus()
			}
		}
		return model, nil

	case "enter":
		if model.submitting {
			return model, nil
		}
		if model.screen == screenStepUp {
			code := strings.TrimSpace(model.codeInput.Value())
			if code == "" {
				return model, nil
			}
			model.submitting = true
			model.flowErr = ""
			return model, model.submitCode(code)
		}
		email := strings.TrimSpace(model.emailInput.Value())
		password := model.passwordInput.Value()
		if email == "" || password == "" {
			model.flowErr = "email and password are required"
			return model, nil
		}
		model.submitting = true
		model.flowErr = ""
		return model, model.submitCredentials(email, password)
	}

	var command tea.Cmd
	if model.screen == screenStepUp {
		model.codeInput, command = model.codeInput.Update(msg)
	} else if model.loginFocus == 0 {
		model.emailInput, command = model.emailInput.Update(msg)
	} else {
		model.passwordInput, command = model.passwordInput.Update(msg)
	}
	return model, command
}

// updateLoginResult handles the outcome of a credential or code
// submission.
func (model *Model) updateLoginResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	model.submitting = false

	var err error
	switch msg := msg.(type) {
	case credentialsResultMsg:
		err = msg.err
	case codeResultMsg:
		err = msg.err
	}

	if err != nil {
		// Generic flow errors are shown verbatim; anything else gets a
		// terse one-liner. The distinction between wrong password and
		// unknown account is deliberately not surfaced.
		if errors.Is(err, authflow.ErrInvalidCredentials) || errors.Is(err, authflow.ErrInvalidCode) {
			model.flowErr = err.Error()
		} else {
			model.flowErr = "sign-in failed: " + shortError(err)
		}
		return model, nil
	}

	switch model.flow.State() {
	case authflow.StateStepUp:
		model.screen = screenStepUp
		model.codeInput.Focus()
		model.emailInput.Blur()
		model.passwordInput.Blur()
		return model, nil

	case authflow.StateAuthenticated:
		model.screen = screenList
		model.passwordInput.SetValue("")
		model.codeInput.SetValue("")
		model.statusBar = ""
		return model, model.fetchTickets(model.tickets.Reload())
	}
	return model, nil
}

func (model *Model) submitCredentials(email, password string) tea.Cmd {
	flow := model.flow
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return credentialsResultMsg{err: flow.SubmitCredentials(ctx, email, password)}
	}
}

func (model *Model) submitCode(code string) tea.Cmd {
	flow := model.flow
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return codeResultMsg{err: flow.SubmitCode(ctx, code)}
	}
}

func (model *Model) viewLogin() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	errStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)

	var b strings.Builder
	b.WriteString("\n")
	if model.screen == screenStepUp {
		b.WriteString("  Two-factor verification\n\n")
		b.WriteString(faint.Render("  Enter the code from your authenticator app for "+model.flow.PendingEmail()) + "\n\n")
		b.WriteString("  " + model.codeInput.View() + "\n")
	} else {
		b.WriteString("  Sign in\n\n")
		b.WriteString("  " + model.emailInput.View() + "\n")
		b.WriteString("  " + model.passwordInput.View() + "\n")
	}

	if model.submitting {
		b.WriteString("\n  " + model.spin.View() + faint.Render(" signing in"))
	}
	if model.flowErr != "" {
		b.WriteString("\n  " + errStyle.Render(model.flowErr))
	}

	help := "Enter submit · Tab switch field · Ctrl+C quit"
	if model.screen == screenStepUp {
		help = "Enter verify · Esc back · Ctrl+C quit"
	}
	b.WriteString("\n\n  " + lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help))
	return b.String()
}
