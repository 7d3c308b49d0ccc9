package adminController

import (
	"strconv"
	"strings"
)

type EntityType string

const (
	EntityShow    EntityType = "show"
	EntityRelease EntityType = "release"
)

type PanelMode string

const (
	PanelClosed PanelMode = "closed"
	PanelAdd    PanelMode = "add"
	PanelEdit   PanelMode = "edit"
)

// PanelState is the editing state of one entity form. A form is either
// closed or open for a new item or an existing one; saving or cancelling
// returns it to closed.
type PanelState struct {
	Entity EntityType
	Mode   PanelMode
	ItemID int64
}

var closedPanel = PanelState{Mode: PanelClosed}

// ParsePanelState reads the ?modal=&id= query of the admin page. Anything
// unrecognized yields a closed panel.
func ParsePanelState(modal, id string) PanelState {
	entity := EntityType(strings.ToLower(strings.TrimSpace(modal)))
	if entity != EntityShow && entity != EntityRelease {
		return closedPanel
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return PanelState{Entity: entity, Mode: PanelAdd}
	}

	itemID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || itemID <= 0 {
		return closedPanel
	}

	return PanelState{Entity: entity, Mode: PanelEdit, ItemID: itemID}
}

func OpenAdd(entity EntityType) PanelState {
	return PanelState{Entity: entity, Mode: PanelAdd}
}

func OpenEdit(entity EntityType, id int64) PanelState {
	return PanelState{Entity: entity, Mode: PanelEdit, ItemID: id}
}

func (p PanelState) IsOpen() bool {
	return p.Mode == PanelAdd || p.Mode == PanelEdit
}

func (p PanelState) IsEditing(entity EntityType) bool {
	return p.IsOpen() && p.Entity == entity
}

// Close is the transition taken on save and on cancel.
func (p PanelState) Close() PanelState {
	return closedPanel
}

// Query renders the state back into the admin page query string.
func (p PanelState) Query() string {
	switch p.Mode {
	case PanelAdd:
		return "?modal=" + string(p.Entity)
	case PanelEdit:
		return "?modal=" + string(p.Entity) + "&id=" + strconv.FormatInt(p.ItemID, 10)
	default:
		return ""
	}
}

func (p PanelState) Title() string {
	noun := "Show"
	if p.Entity == EntityRelease {
		noun = "Release"
	}
	if p.Mode == PanelEdit {
		return "Edit " + noun
	}
	return "Add " + noun
}
