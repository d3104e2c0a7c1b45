// Package demo holds example dialogs and a page that opens them. The CLI
// uses it for the demo and prompt commands.
package demo

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/modalhost/pkg/modal"
)

// Element IDs of the email form.
const (
	EmailInputID  = "email-input"
	EmailSubmitID = "email-submit"
	EmailCancelID = "email-cancel"
)

// EmailResult is the value an accepted email form resolves with.
type EmailResult struct {
	Email string `json:"email"`
}

var errBadAddress = errors.New("enter an address like name@example.com")

// emailValidators run in order; the first failure is shown.
var emailValidators = []func(string) error{
	huh.ValidateNotEmpty(),
	huh.ValidateMaxLength(254),
	validateAddress,
}

func validateAddress(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errBadAddress
	}
	at := strings.LastIndex(s, "@")
	if !strings.Contains(s[at+1:], ".") {
		return errBadAddress
	}
	return nil
}

// ValidateEmail returns the first validation error for s, or nil.
func ValidateEmail(s string) error {
	for _, v := range emailValidators {
		if err := v(s); err != nil {
			return err
		}
	}
	return nil
}

// EmailForm asks for an email address. Submitting an invalid address shows
// the error and puts focus back in the field; the request stays open.
func EmailForm(c modal.Controls[EmailResult]) *modal.Modal {
	input := textinput.New()
	input.Placeholder = "you@example.com"
	input.CharLimit = 254
	input.Prompt = ""

	var errMsg string
	submit := func() tea.Cmd {
		value := strings.TrimSpace(input.Value())
		if err := ValidateEmail(value); err != nil {
			errMsg = err.Error()
			return modal.FocusCmd(EmailInputID)
		}
		errMsg = ""
		c.Resolve(EmailResult{Email: value})
		return nil
	}

	return modal.New("Subscribe",
		modal.WithDescription("We send release notes to this address. *No spam.*"),
		modal.WithInitialFocus(EmailInputID),
		modal.WithPrimaryAction(EmailSubmitID),
		modal.WithActionHandler(func(action string) tea.Cmd {
			switch action {
			case EmailSubmitID:
				return submit()
			case EmailCancelID:
				c.Cancel()
			}
			return nil
		}),
	).
		AddSection(modal.Input(EmailInputID, &input,
			modal.WithLabel("Email"),
			modal.WithInvalid(func() bool { return errMsg != "" }),
		)).
		AddSection(modal.ErrorText(func() string { return errMsg })).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Subscribe ", EmailSubmitID),
			modal.Btn(" Cancel ", EmailCancelID),
		))
}
