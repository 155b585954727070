package domain

import "strings"

// Location describes one endpoint of a distance query: either a reference
// to a stored office or a free-form street address. Exactly one of the two
// is set; a zero Location resolves to nothing.
type Location struct {
	OfficeID int
	Address  string
}

// OfficeRef builds a Location pointing at a stored office.
func OfficeRef(officeID int) Location { return Location{OfficeID: officeID} }

// FreeAddress builds a Location from raw address text.
func FreeAddress(text string) Location { return Location{Address: text} }

func (l Location) IsOffice() bool { return l.OfficeID > 0 }

// NormalizeAddress produces the cache key form of an address: lower-cased
// and trimmed. Keys are address strings, not office IDs, so two offices
// sharing identical address text legitimately share a cache slot.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
