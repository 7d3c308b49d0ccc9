package types

import "strings"

type ViewMode string

const (
	ViewVisitor    ViewMode = "visitor"
	ViewAdminLogin ViewMode = "admin-login"
	ViewAdminPanel ViewMode = "admin-panel"
)

// AdminSignal is the only value that switches a page into admin mode. It
// arrives as the /admin path, ?view=admin, or the #admin fragment forwarded
// by the page script.
const AdminSignal = "admin"

// ResolveViewMode maps the admin signal and auth state to the single view
// mode a page renders in. Any signal other than AdminSignal is visitor mode,
// whatever the auth state.
func ResolveViewMode(signal string, authenticated bool) ViewMode {
	if strings.TrimPrefix(strings.TrimSpace(signal), "#") != AdminSignal {
		return ViewVisitor
	}

	if authenticated {
		return ViewAdminPanel
	}

	return ViewAdminLogin
}

func (v ViewMode) IsAdmin() bool {
	return v == ViewAdminLogin || v == ViewAdminPanel
}
