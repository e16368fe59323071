// Package nav holds the sidebar menu and its role filter.
package nav

import "timesheet-web/internal/auth"

type Item struct {
	Label string `json:"label"`
	To    string `json:"to"`
	Icon  string `json:"icon"`
}

type Group struct {
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// Menu returns a fresh copy of the full menu, in display order.
func Menu() []Group {
	return []Group{
		{Label: "Overview", Items: []Item{
			{Label: "Dashboard", To: "/dashboard", Icon: "mdi:view-dashboard-outline"},
		}},
		{Label: "Time", Items: []Item{
			{Label: "Track", To: "/track", Icon: "mdi:timer-outline"},
			{Label: "Timesheet", To: "/timesheets", Icon: "mdi:calendar-week-outline"},
			{Label: "Approvals", To: "/approvals", Icon: "mdi:check-decagram-outline"},
		}},
		{Label: "Insights", Items: []Item{
			{Label: "Reports", To: "/reports", Icon: "mdi:chart-box-outline"},
		}},
		{Label: "Workspace", Items: []Item{
			{Label: "Projects", To: "/projects", Icon: "mdi:briefcase-outline"},
			{Label: "Clients", To: "/clients", Icon: "mdi:account-multiple-outline"},
			{Label: "Team", To: "/team", Icon: "mdi:account-group-outline"},
		}},
		{Label: "Self Service", Items: []Item{
			{Label: "My Profile", To: "/profile", Icon: "mdi:account-circle-outline"},
		}},
	}
}

// EmployeeAllowList is every destination an employee-only session may see.
var EmployeeAllowList = map[string]struct{}{
	"/track":            {},
	auth.PathTimesheets: {},
	"/profile":          {},
}

// Filter prunes groups for an employee-only role set, keeping allow-listed
// items and dropping groups left empty. Order is preserved. Any other role
// set gets groups back unchanged.
func Filter(groups []Group, roles auth.RoleSet) []Group {
	if !roles.Restricted() {
		return groups
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		var items []Item
		for _, it := range g.Items {
			if _, ok := EmployeeAllowList[it.To]; ok {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Group{Label: g.Label, Items: items})
	}
	return out
}

// ForToken is Filter over the full menu and the token's roles.
func ForToken(token string) []Group {
	return Filter(Menu(), auth.ResolveRoles(token))
}
