package demo

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/modalhost/pkg/modal"
)

// Element IDs of the picker.
const (
	PickerFilterID = "pick-filter"
	PickerListID   = "pick-list"
	PickerChooseID = "pick-choose"
	PickerCancelID = "pick-cancel"
)

// Picker returns a dialog that resolves with one of items. Typing in the
// filter narrows the list with fuzzy matching; Enter in the filter picks the
// highlighted match.
func Picker(title string, items []string) modal.RenderFunc[string] {
	return func(c modal.Controls[string]) *modal.Modal {
		filter := textinput.New()
		filter.Placeholder = "type to filter"
		filter.Prompt = "/ "

		listItems := make([]modal.ListItem, len(items))
		byID := make(map[string]string, len(items))
		for i, it := range items {
			id := fmt.Sprintf("pick-item-%d", i)
			listItems[i] = modal.ListItem{ID: id, Label: it}
			byID[id] = it
		}

		selected := 0
		list := modal.List(PickerListID, listItems, &selected,
			modal.WithMaxVisible(6),
			modal.WithFilter(func() string { return filter.Value() }),
		)

		choose := func() {
			if item, ok := list.Selected(); ok {
				c.Resolve(item.Label)
			}
		}

		return modal.New(title,
			modal.WithInitialFocus(PickerFilterID),
			modal.WithPrimaryAction(PickerChooseID),
			modal.WithActionHandler(func(action string) tea.Cmd {
				switch action {
				case PickerChooseID:
					choose()
				case PickerCancelID:
					c.Cancel()
				default:
					if label, ok := byID[action]; ok {
						c.Resolve(label)
					}
				}
				return nil
			}),
		).
			AddSection(modal.Input(PickerFilterID, &filter)).
			AddSection(list).
			AddSection(modal.Spacer()).
			AddSection(modal.Buttons(
				modal.Btn(" Choose ", PickerChooseID),
				modal.Btn(" Cancel ", PickerCancelID),
			))
	}
}
