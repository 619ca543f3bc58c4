package domain

// Denomination is one of the tracked metal forms.
type Denomination string

const (
	Gold999 Denomination = "gold999"
	Gold995 Denomination = "gold995"
	Silver  Denomination = "silver"
	Rani    Denomination = "rani"
	Rupu    Denomination = "rupu"
)

// Denominations lists every tracked metal form in a fixed order.
var Denominations = []Denomination{Gold999, Gold995, Silver, Rani, Rupu}

// IsValid reports whether d is a known denomination.
func (d Denomination) IsValid() bool {
	switch d {
	case Gold999, Gold995, Silver, Rani, Rupu:
		return true
	}
	return false
}

// StockTracked reports whether lots of this denomination are tracked as
// discrete weighable items in the stock sub-ledger.
func (d Denomination) StockTracked() bool {
	return d == Rani || d == Rupu
}

// GoldForm reports whether this denomination is priced per 10 grams.
// Silver forms are priced per kilogram.
func (d Denomination) GoldForm() bool {
	return d == Gold999 || d == Gold995 || d == Rani
}
