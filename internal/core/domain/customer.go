package domain

type (
	Profile struct {
		CustomerID string
		Email      string
		FullName   string
		TaxID      string
		Phone      string
		Address    Address
		Approved   bool
	}

	Address struct {
		Street       string
		Number       string
		Complement   string
		Neighborhood string
		City         string
		State        string
		CEP          string
	}
)

// Complete reports whether the profile carries the fields checkout
// requires: full name and tax id.
func (p Profile) Complete() bool {
	return p.FullName != "" && p.TaxID != ""
}
