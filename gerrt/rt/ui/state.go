// Package ui keeps the open/closed and active state of the viewer's menus
// and buttons.
package ui

import "sort"

// Button and panel ids.
const (
	Delete      = "delete"
	HideAll     = "hideAll"
	BuildStep   = "buildStep"
	ShowAll     = "showAll"
	ShowParts   = "showParts"
	CollapseBtn = "collapseBtn"
	MiniOpenBtn = "miniOpenBtn"
	BuildToggle = "buildToggle"

	Sidebar   = "sidebar"
	BuildMenu = "buildMenu"
	PartsMenu = "partsMenu"

	// PartButtons groups the per-part sub-menu buttons.
	PartButtons = "partButtons"
)

// State is a set of named toggles plus exclusive button groups. Lookups of
// unknown ids report ok=false and change nothing.
type State struct {
	open   map[string]bool
	groups map[string]string
}

func New() *State {
	return &State{
		open:   make(map[string]bool),
		groups: make(map[string]string),
	}
}

// Default is the initial layout: sidebar open, menus closed.
func Default() *State {
	s := New()
	s.Register(Sidebar, true)
	s.Register(MiniOpenBtn, false)
	s.Register(BuildMenu, false)
	s.Register(PartsMenu, false)
	s.Register(BuildToggle, false)
	return s
}

func (s *State) Register(id string, open bool) { s.open[id] = open }

func (s *State) IsOpen(id string) (bool, bool) {
	v, ok := s.open[id]
	return v, ok
}

func (s *State) Toggle(id string) (bool, bool) {
	v, ok := s.open[id]
	if !ok {
		return false, false
	}
	s.open[id] = !v
	return !v, true
}

func (s *State) Open(id string) bool  { return s.set(id, true) }
func (s *State) Close(id string) bool { return s.set(id, false) }

func (s *State) set(id string, v bool) bool {
	if _, ok := s.open[id]; !ok {
		return false
	}
	s.open[id] = v
	return true
}

// SetActive marks id as the one active button of group.
func (s *State) SetActive(group, id string) { s.groups[group] = id }

func (s *State) Active(group string) string { return s.groups[group] }

func (s *State) ClearActive(group string) { delete(s.groups, group) }

// Collapse hides the sidebar and shows the mini open button.
func (s *State) Collapse() {
	s.open[Sidebar] = false
	s.open[MiniOpenBtn] = true
}

// Expand reverses Collapse.
func (s *State) Expand() {
	s.open[Sidebar] = true
	s.open[MiniOpenBtn] = false
}

// OpenIDs lists the open toggles, sorted.
func (s *State) OpenIDs() []string {
	var ids []string
	for id, v := range s.open {
		if v {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
