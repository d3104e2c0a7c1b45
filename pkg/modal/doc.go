// Package modal hosts promise-style modal dialogs in a bubbletea program.
//
// Code that needs an answer from the user opens a dialog and awaits a
// future. The Host mounts the dialog over the page and traps focus inside
// it. Escape or a click on the backdrop cancels. Once the exit animation
// ends, focus goes back to the element that had it before the dialog
// opened.
//
// # Quick Start
//
//	host := modal.NewHost(focusManager)
//	p := tea.NewProgram(page)
//	host.Mount(modal.ProgramSender(p))
//	defer host.Unmount()
//
//	// Anywhere, including a plain goroutine:
//	fut := modal.OpenWithRender(func(c modal.Controls[string]) *modal.Modal {
//	    return modal.New("Rename",
//	        modal.WithPrimaryAction("ok"),
//	        modal.WithActionHandler(func(action string) tea.Cmd {
//	            switch action {
//	            case "ok":
//	                c.Resolve(input.Value())
//	            case "cancel":
//	                c.Cancel()
//	            }
//	            return nil
//	        }),
//	    ).
//	        AddSection(modal.Input("name", &input)).
//	        AddSection(modal.Buttons(
//	            modal.Btn(" OK ", "ok"),
//	            modal.Btn(" Cancel ", "cancel"),
//	        ))
//	})
//	name, ok, err := fut.Await(ctx)
//
// The page forwards every message to the host first and skips its own
// handling when the host reports it handled the message:
//
//	func (m Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
//	    if cmd, handled := m.host.Update(msg); handled {
//	        return m, cmd
//	    }
//	    ...
//	}
//
//	func (m Page) View() string {
//	    return m.host.View(m.renderPage(), m.width, m.height)
//	}
//
// # Lifecycle
//
// The dialog layer moves through unmounted -> open -> closed -> unmounted.
// Closed means the request is settled and the exit animation is running.
// The overlay's AnimationEndMsg ends that phase. With reduced motion the
// host unmounts in the same turn as settlement. Focus is restored one turn
// after unmount.
//
// # Built-in Sections
//
//   - Text(s string) - static text, auto-wrapped
//   - Markdown(md string) - glamour-rendered markdown
//   - Spacer() - blank line
//   - ErrorText(fn) - inline error shown while fn returns a message
//   - Buttons(btns ...ButtonDef) - button row with focus/hover styling
//   - Checkbox(id, label string, checked *bool) - toggleable checkbox
//   - Input(id string, model *textinput.Model, opts...) - text input
//   - List(id string, items []ListItem, selectedIdx *int, opts...) - list with optional fuzzy filter
//   - Scroll(id string, height int, sections...) - the dialog's scrollable region,
//     a tab stop of its own when the content overflows
//   - When(condition func() bool, section) - conditional rendering
//   - Custom(renderFn, updateFn) - escape hatch for complex content
//
// Focusable elements are rediscovered on every keystroke, so sections may
// appear and disappear freely while the dialog is open.
package modal
