package entity

// Role is a staff member's permission level.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleClinician Role = "clinician"
	RoleFrontDesk Role = "front_desk"
)

// MedicationForm is how a medication is administered.
type MedicationForm string

const (
	FormTablet    MedicationForm = "tablet"
	FormLiquid    MedicationForm = "liquid"
	FormInjection MedicationForm = "injection"
	FormTopical   MedicationForm = "topical"
)

// contactInfo is embedded by entities that can be reached directly.
type contactInfo struct {
	Phone   string   `json:"phone,omitempty"`
	Email   string   `json:"email,omitempty"`
	Address *Address `json:"address,omitempty" gorm:"embedded;embeddedPrefix:address_"`
}

// Address is a postal address. It is stored inline, not as an entity.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
