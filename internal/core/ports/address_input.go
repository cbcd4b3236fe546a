package ports

// AddressInput is the address payload shared by create and update requests.
// The same rules apply in both: an address, when supplied, is validated in full.
type AddressInput struct {
	Street     string  `json:"street"     validate:"notblank"`
	District   string  `json:"district"   validate:"notblank"`
	City       string  `json:"city"       validate:"notblank"`
	State      string  `json:"state"      validate:"notblank"`
	Number     *string `json:"number"`
	Complement *string `json:"complement"`
}
