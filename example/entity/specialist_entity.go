package entity

// Specialist is an external practitioner clients are referred to.
type Specialist struct {
	TenantScopedEntity
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	contactInfo
	// Facilities the specialist visits.
	Facilities []Facility `json:"facilities" gorm:"many2many:specialist_facilities"`
}
