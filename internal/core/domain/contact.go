package domain

// Contact holds the store's public contact details.
type Contact struct {
	SalesHotline string
	WhatsApp     string
	SupportEmail string
	Address      string
	Availability []string
}

// DefaultContact is served until an admin saves real contact details.
func DefaultContact() *Contact {
	return &Contact{
		SalesHotline: "+20 100 000 0000",
		WhatsApp:     "+20 100 000 0001",
		SupportEmail: "support@nourtech.example",
		Address:      "Add your office or showroom address here",
		Availability: []string{},
	}
}
