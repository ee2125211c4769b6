package qr

// LocatorModules is the side of a locator pattern in modules.
const LocatorModules = 7

// Role identifies which corner a locator region sits in.
type Role int

// Locator roles.
const (
	TopLeft Role = iota
	TopRight
	BottomLeft
)

func (r Role) String() string {
	switch r {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	}
	return "unknown"
}

// Region is one 7×7 locator region, anchored at its top-left module.
type Region struct {
	Row, Col int
	Role     Role
}

// Contains reports whether (row, col) lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.Row && row < r.Row+LocatorModules &&
		col >= r.Col && col < r.Col+LocatorModules
}

// Locators classifies grid cells as locator or data cells.
// The three regions are disjoint for any grid of 14 or more modules, which
// covers every real QR version (21 and up).
type Locators struct {
	regions [3]Region
}

// NewLocators returns the locator regions of a size×size grid.
func NewLocators(size int) Locators {
	far := size - LocatorModules
	return Locators{regions: [3]Region{
		{Row: 0, Col: 0, Role: TopLeft},
		{Row: 0, Col: far, Role: TopRight},
		{Row: far, Col: 0, Role: BottomLeft},
	}}
}

// Regions returns the regions in top-left, top-right, bottom-left order.
func (l Locators) Regions() []Region {
	return l.regions[:]
}

// RegionAt returns the region containing (row, col).
func (l Locators) RegionAt(row, col int) (Region, bool) {
	for _, r := range l.regions {
		if r.Contains(row, col) {
			return r, true
		}
	}
	return Region{}, false
}

// IsLocator reports whether (row, col) belongs to a locator pattern.
func (l Locators) IsLocator(row, col int) bool {
	_, ok := l.RegionAt(row, col)
	return ok
}
