package models

// DTOs returned by the external user/department/concern directory. Field names
// follow the upstream API payloads.

type ApiUser struct {
	ID       int    `json:"id"`
	UserName string `json:"userName"`
	BioID    string `json:"bioid,omitempty"`
	IsActive bool   `json:"isActive"`
}

type ApiDepartment struct {
	SectionID   int    `json:"SectionId"`
	SectionName string `json:"SectionName"`
}

type ApiConcern struct {
	ConcernID   int    `json:"ConcernId"`
	ConcernName string `json:"ConcernName"`
}

type RolePermission struct {
	PrimaryActionName   string `json:"primaryActionName"`
	SecondaryActionName string `json:"secondaryActionName"`
}
