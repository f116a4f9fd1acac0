// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application from the resume view.
	Quit key.Binding

	// ForceQuit exits from any view, including text inputs.
	ForceQuit key.Binding

	// Back returns to the resume view.
	Back key.Binding

	Up   key.Binding
	Down key.Binding

	// NextField and PrevField move focus on the login form.
	NextField key.Binding
	PrevField key.Binding

	// Login submits the login form.
	Login key.Binding

	// Add opens a chat for the selected section.
	Add key.Binding

	// Export writes the resume as Markdown.
	Export key.Binding

	// Reload re-reads the resume from storage.
	Reload key.Binding

	// Logout clears the session.
	Logout key.Binding

	// Send posts the typed chat message.
	Send key.Binding

	// Submit finishes the section chat.
	Submit key.Binding

	// Dismiss closes an error notice. Any key does; this binding is for help text.
	Dismiss key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Login: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "log in"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "add"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("any key", "dismiss"),
		),
	}
}

// LoginHelp returns keybindings for the login view.
func (k *KeyMap) LoginHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Login, k.ForceQuit}
}

// ResumeHelp returns keybindings for the resume view.
func (k *KeyMap) ResumeHelp() []key.Binding {
	return []key.Binding{k.Up, k.Add, k.Export, k.Logout, k.Quit}
}

// ChatHelp returns keybindings for the chat view.
func (k *KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Send, k.Submit, k.Back}
}

// NoticeHelp returns keybindings shown while an error notice is open.
func (k *KeyMap) NoticeHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
