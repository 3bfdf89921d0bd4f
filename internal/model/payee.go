package model

// Address is a postal address as the bill-pay endpoint expects it.
type Address struct {
	Street  string `json:"street" yaml:"street"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	ZipCode string `json:"zipCode" yaml:"zip_code"`
}

// Payee is the recipient of a bill payment.
type Payee struct {
	Name          string  `json:"name" yaml:"name"`
	Address       Address `json:"address" yaml:"address"`
	PhoneNumber   string  `json:"phoneNumber" yaml:"phone_number"`
	AccountNumber string  `json:"accountNumber" yaml:"account_number"`
}
