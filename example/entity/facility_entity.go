package entity

// Facility is a physical care site owned by a tenant.
type Facility struct {
	TenantScopedEntity
	// Display name shown in the facility switcher.
	Name string `json:"name" validate:"required"`
	contactInfo
	Timezone string  `json:"timezone"`
	Capacity int     `json:"capacity" validate:"min=0"`
	Tenant   *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
