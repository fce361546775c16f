package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleKnownAndUnknown(t *testing.T) {
	s := Default()

	open, ok := s.Toggle(BuildMenu)
	assert.True(t, ok)
	assert.True(t, open)
	open, _ = s.Toggle(BuildMenu)
	assert.False(t, open)

	_, ok = s.Toggle("missing")
	assert.False(t, ok)
	assert.False(t, s.Open("missing"))
	_, ok = s.IsOpen("missing")
	assert.False(t, ok)
}

func TestCollapseExpand(t *testing.T) {
	s := Default()
	s.Collapse()
	assert.Equal(t, []string{MiniOpenBtn}, s.OpenIDs())
	s.Expand()
	assert.Equal(t, []string{Sidebar}, s.OpenIDs())
}

func TestExclusiveActive(t *testing.T) {
	s := New()
	s.SetActive(PartButtons, "toono")
	s.SetActive(PartButtons, "uni")
	assert.Equal(t, "uni", s.Active(PartButtons))
	s.SetActive(PartButtons, "uni")
	assert.Equal(t, "uni", s.Active(PartButtons))

	s.ClearActive(PartButtons)
	assert.Equal(t, "", s.Active(PartButtons))
}
