package entity

// Medication is an entry of a tenant's formulary.
type Medication struct {
	TenantScopedEntity
	Name       string         `json:"name" validate:"required"`
	Form       MedicationForm `json:"form"`
	StrengthMg float64        `json:"strengthMg" validate:"min=0"`
	Controlled bool           `json:"controlled"`
}
