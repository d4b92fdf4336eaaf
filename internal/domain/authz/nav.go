package authz

import (
	"strings"

	"github.com/faithconnect/backend/internal/domain/identity"
)

// NavSection identifies which navigation set a client should render
type NavSection string

const (
	NavSectionPortal     NavSection = "portal"
	NavSectionAdmin      NavSection = "admin"
	NavSectionSuperAdmin NavSection = "superadmin"
)

// NavLink is one entry in a navigation set
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavScope selects the navigation section from the current route path.
// The selection is by URL prefix only; whether the account may actually
// enter the section is Authorize's concern, not NavScope's.
func NavScope(routePath string) NavSection {
	switch {
	case strings.HasPrefix(routePath, "/superadmin"):
		return NavSectionSuperAdmin
	case strings.HasPrefix(routePath, "/admin"):
		return NavSectionAdmin
	default:
		return NavSectionPortal
	}
}

var portalLinks = []NavLink{
	{Label: "Home", Path: "/portal"},
	{Label: "My Profile", Path: "/portal/profile"},
	{Label: "Departments", Path: "/portal/departments"},
	{Label: "Groups", Path: "/portal/groups"},
	{Label: "Events", Path: "/portal/events"},
	{Label: "Live Streams", Path: "/portal/streams"},
	{Label: "Branch Transfer", Path: "/portal/transfers"},
	{Label: "Notifications", Path: "/portal/notifications"},
}

var adminLinks = []NavLink{
	{Label: "Dashboard", Path: "/admin"},
	{Label: "Members", Path: "/admin/members"},
	{Label: "Transfer Requests", Path: "/admin/transfers"},
	{Label: "Departments", Path: "/admin/departments"},
	{Label: "Groups", Path: "/admin/groups"},
	{Label: "Events", Path: "/admin/events"},
	{Label: "Attendance", Path: "/admin/attendance"},
	{Label: "Streams", Path: "/admin/streams"},
}

var superAdminLinks = []NavLink{
	{Label: "Dashboard", Path: "/superadmin"},
	{Label: "Branches", Path: "/superadmin/branches"},
	{Label: "Users", Path: "/superadmin/users"},
	{Label: "Audit Logs", Path: "/superadmin/audit"},
	{Label: "Platform Stats", Path: "/superadmin/stats"},
}

// LinksFor returns the navigation links for a section, with section-switch
// entries appended for roles qualified to cross over.
func LinksFor(section NavSection, role identity.Role) []NavLink {
	var links []NavLink
	switch section {
	case NavSectionSuperAdmin:
		links = append(links, superAdminLinks...)
	case NavSectionAdmin:
		links = append(links, adminLinks...)
	default:
		links = append(links, portalLinks...)
	}

	if section != NavSectionAdmin && role.IsAdmin() {
		links = append(links, NavLink{Label: "Admin Area", Path: "/admin"})
	}
	if section != NavSectionSuperAdmin && role.IsSuperAdmin() {
		links = append(links, NavLink{Label: "Super Admin", Path: "/superadmin"})
	}
	if section != NavSectionPortal {
		links = append(links, NavLink{Label: "Member Portal", Path: "/portal"})
	}

	return links
}
