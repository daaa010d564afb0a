// Package keys holds the keybinding registry for the chat TUI.
package keys

import (
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Action represents a keybinding action.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Description string
	Handler     func()
	Visible     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Registry holds keybindings organized by scope. Scope names match page
// names; global bindings apply everywhere.
type Registry struct {
	global map[string]*Action
	scopes map[string]map[string]*Action
}

// NewRegistry creates an empty keybinding registry.
func NewRegistry() *Registry {
	return &Registry{
		global: make(map[string]*Action),
		scopes: make(map[string]map[string]*Action),
	}
}

// AddGlobal registers a keybinding that applies in every scope.
func (r *Registry) AddGlobal(name string, action *Action) {
	r.global[name] = action
}

// AddScoped registers a keybinding for one scope.
func (r *Registry) AddScoped(scope, name string, action *Action) {
	if r.scopes[scope] == nil {
		r.scopes[scope] = make(map[string]*Action)
	}
	r.scopes[scope][name] = action
}

// Hints returns visible keybinding descriptions for a scope, scoped
// bindings first, each group sorted for a stable help line.
func (r *Registry) Hints(scope string) []string {
	var hints []string
	hints = append(hints, visibleSorted(r.scopes[scope])...)
	hints = append(hints, visibleSorted(r.global)...)
	return hints
}

func visibleSorted(actions map[string]*Action) []string {
	var hints []string
	for _, a := range actions {
		if a.Visible {
			hints = append(hints, a.Description)
		}
	}
	sort.Strings(hints)
	return hints
}

// HandleEvent dispatches a key event to the matching action in the given
// scope. Scoped bindings shadow global ones. Returns true if a handler ran.
func (r *Registry) HandleEvent(scope string, ev *tcell.EventKey) bool {
	if scoped, ok := r.scopes[scope]; ok {
		for _, a := range scoped {
			if a.Matches(ev) {
				a.Handler()
				return true
			}
		}
	}
	for _, a := range r.global {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	return false
}
