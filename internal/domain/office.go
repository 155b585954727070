package domain

import "fmt"

// Office is a fixed company location with a known street address and,
// typically, stored coordinates.
type Office struct {
	ID      int
	City    string
	Street  string
	Country string
	Coords  *Coordinates
}

// FullAddress returns the formatted address used both for geocoding and as
// the distance cache key, e.g. "ul. Ivaylo 5, Sofia, Bulgaria".
func (o *Office) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s", o.Street, o.City, o.Country)
}
