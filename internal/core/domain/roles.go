package domain

// RoleDetail describes what a role tag is allowed to do in the product.
type RoleDetail struct {
	Role         Role     `json:"role"`
	Label        string   `json:"label"`
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`
}

var roleCatalog = map[Role]RoleDetail{
	RoleMaster: {
		Role:        RoleMaster,
		Label:       "Super administrator",
		Description: "Highest authority. Manages organisation structure, global settings and security policy.",
		Capabilities: []string{
			"Manage permissions of every role",
			"Allocate and reclaim system resources",
			"View global operating reports",
		},
	},
	RoleAdmin: {
		Role:        RoleAdmin,
		Label:       "Administrator",
		Description: "Manages team members and module configuration.",
		Capabilities: []string{
			"Create and disable user accounts",
			"Maintain client and case master data",
			"Configure business workflow rules",
		},
	},
	RoleSale: {
		Role:        RoleSale,
		Label:       "Business development",
		Description: "Focuses on client acquisition and channel upkeep.",
		Capabilities: []string{
			"Record prospects and follow-ups",
			"View basic role information",
			"Submit business requests to administrators",
		},
	},
	RoleLawyer: {
		Role:        RoleLawyer,
		Label:       "Lawyer",
		Description: "Handles client cases and accesses the cases they are responsible for.",
		Capabilities: []string{
			"View and manage assigned cases",
			"Upload evidence and documents",
			"Share material with the team",
		},
	},
	RoleAssistant: {
		Role:        RoleAssistant,
		Label:       "Assistant",
		Description: "Supports lawyers with paperwork and scheduling.",
		Capabilities: []string{
			"Edit basic case information",
			"Manage hearing schedules",
			"Submit documents for review",
		},
	},
}

// RoleCatalog returns the details of every role in privilege order.
func RoleCatalog() []RoleDetail {
	out := make([]RoleDetail, 0, len(Roles))
	for _, r := range Roles {
		d := roleCatalog[r]
		d.Capabilities = append([]string(nil), d.Capabilities...)
		out = append(out, d)
	}
	return out
}
