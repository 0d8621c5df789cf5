package entity

// Tenant is an organisation operating one or more facilities.
type Tenant struct {
	BaseEntity
	Name string `json:"name" validate:"required,min=2,max=120"`
	// URL-safe identifier used in subdomains.
	Slug       string      `json:"slug" gorm:"uniqueIndex"`
	Active     bool        `json:"active"`
	Facilities []*Facility `json:"facilities,omitempty" gorm:"foreignKey:TenantID"`
}
