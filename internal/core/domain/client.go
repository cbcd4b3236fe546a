package domain

import "time"

// Client is a registered patient.
type Client struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	CPF       string    `json:"cpf" bson:"cpf"`
	Phone     string    `json:"phone" bson:"phone"`
	Address   Address   `json:"address" bson:"address"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ClientPatch holds the mutable fields of a client.
type ClientPatch struct {
	Name    *string
	Phone   *string
	Address *AddressPatch
}

// Apply merges the patch into the client field by field.
func (c *Client) Apply(patch ClientPatch) {
	setIfPresent(&c.Name, patch.Name)
	setIfPresent(&c.Phone, patch.Phone)
	if patch.Address != nil {
		c.Address.Apply(*patch.Address)
	}
}

func (c *Client) State() LifecycleState {
	return stateOf(c.Active)
}

// Deactivate soft-deletes the client. It reports whether the state changed.
func (c *Client) Deactivate() bool {
	if !c.State().CanTransitionTo(StateInactive) {
		return false
	}
	c.Active = false
	return true
}
