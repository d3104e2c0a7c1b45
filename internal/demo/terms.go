package demo

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalhost/pkg/modal"
)

// Element IDs of the terms dialog.
const (
	TermsBodyID    = "terms-body"
	TermsAgreeID   = "terms-agree"
	TermsAcceptID  = "terms-accept"
	TermsDeclineID = "terms-decline"
)

// DefaultTerms is the document shown by the demo.
const DefaultTerms = `## Usage terms

1. The software is provided as is.
2. Dialogs may be dismissed at any time with **Esc**.
3. Scrolling this text with the wheel never moves the page behind it.
4. Clicking outside the dialog declines.
5. Focus returns to the button that opened this dialog.

Read to the end, tick the box and accept.`

// Terms shows md in a scroll region of the given height. Accept stays
// disabled until the box is ticked; the request resolves true on accept.
func Terms(md string, height int) modal.RenderFunc[bool] {
	return func(c modal.Controls[bool]) *modal.Modal {
		agreed := false
		return modal.New("Terms",
			modal.WithVariant(modal.VariantInfo),
			modal.WithWidth(60),
			modal.WithActionHandler(func(action string) tea.Cmd {
				switch action {
				case TermsAcceptID:
					c.Resolve(true)
				case TermsDeclineID:
					c.Cancel()
				}
				return nil
			}),
		).
			AddSection(modal.Scroll(TermsBodyID, height, modal.Markdown(md))).
			AddSection(modal.Spacer()).
			AddSection(modal.Checkbox(TermsAgreeID, "I have read the terms", &agreed)).
			AddSection(modal.Spacer()).
			AddSection(modal.Buttons(
				modal.Btn(" Accept ", TermsAcceptID, modal.BtnDisabled(func() bool { return !agreed })),
				modal.Btn(" Decline ", TermsDeclineID, modal.BtnDanger()),
			))
	}
}
