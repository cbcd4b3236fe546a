package domain

// Address is the postal address embedded in practitioners and clients.
// It has no identity of its own.
type Address struct {
	Street     string `json:"street" bson:"street"`
	District   string `json:"district" bson:"district"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	Number     string `json:"number,omitempty" bson:"number,omitempty"`
	Complement string `json:"complement,omitempty" bson:"complement,omitempty"`
}

// AddressPatch carries the sub-fields of an address update.
// A nil field leaves the stored value untouched.
type AddressPatch struct {
	Street     *string
	District   *string
	City       *string
	State      *string
	Number     *string
	Complement *string
}

// Apply merges the supplied sub-fields into the address.
func (a *Address) Apply(p AddressPatch) {
	setIfPresent(&a.Street, p.Street)
	setIfPresent(&a.District, p.District)
	setIfPresent(&a.City, p.City)
	setIfPresent(&a.State, p.State)
	setIfPresent(&a.Number, p.Number)
	setIfPresent(&a.Complement, p.Complement)
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
