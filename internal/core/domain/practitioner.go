package domain

import "time"

// Specialty is the medical specialty a practitioner is registered under.
type Specialty string

const (
	SpecialtyOrthopedics Specialty = "ORTOPEDIA"
	SpecialtyCardiology  Specialty = "CARDIOLOGIA"
	SpecialtyGynecology  Specialty = "GINECOLOGIA"
	SpecialtyDermatology Specialty = "DERMATOLOGIA"
)

// Practitioner is a registered doctor.
type Practitioner struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	CRM       string    `json:"crm" bson:"crm"`
	Specialty Specialty `json:"specialty" bson:"specialty"`
	Address   Address   `json:"address" bson:"address"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PractitionerPatch holds the mutable fields of a practitioner.
// Email, CRM and specialty are fixed at registration.
type PractitionerPatch struct {
	Name    *string
	Phone   *string
	Address *AddressPatch
}

// Apply merges the patch into the practitioner field by field.
func (p *Practitioner) Apply(patch PractitionerPatch) {
	setIfPresent(&p.Name, patch.Name)
	setIfPresent(&p.Phone, patch.Phone)
	if patch.Address != nil {
		p.Address.Apply(*patch.Address)
	}
}

// State returns the lifecycle state derived from the active flag.
func (p *Practitioner) State() LifecycleState {
	return stateOf(p.Active)
}

// Deactivate soft-deletes the practitioner. It reports whether the state changed.
func (p *Practitioner) Deactivate() bool {
	if !p.State().CanTransitionTo(StateInactive) {
		return false
	}
	p.Active = false
	return true
}
