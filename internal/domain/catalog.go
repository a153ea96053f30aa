package domain

import "golang.org/x/text/unicode/norm"

// Catalog maps category -> facility display name -> coordinates.
// Names are stored and looked up in Unicode NFC form.
// It is loaded once per resolution and never mutated afterwards.
type Catalog map[Category]map[string]Coordinates

// Lookup returns the coordinates registered for name under cat.
func (c Catalog) Lookup(cat Category, name string) (Coordinates, bool) {
	facilities, ok := c[cat]
	if !ok {
		return Coordinates{}, false
	}
	coords, ok := facilities[norm.NFC.String(name)]
	return coords, ok
}

// Add registers a facility, creating the category bucket when needed.
func (c Catalog) Add(cat Category, name string, coords Coordinates) {
	if c[cat] == nil {
		c[cat] = make(map[string]Coordinates)
	}
	c[cat][norm.NFC.String(name)] = coords
}

// Len returns the total number of facilities across categories.
func (c Catalog) Len() int {
	n := 0
	for _, facilities := range c {
		n += len(facilities)
	}
	return n
}
