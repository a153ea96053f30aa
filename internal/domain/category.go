package domain

// Category partitions emergency facilities.
type Category string

const (
	CategoryPolice   Category = "police"
	CategoryFire     Category = "fire"
	CategoryHospital Category = "hospital"
)

// Categories lists every category in catalog order.
var Categories = []Category{CategoryPolice, CategoryFire, CategoryHospital}

// ParseCategory maps a request type onto a category.
//
// An empty request type means police. Any value other than "police" or "fire"
// resolves as hospital; unrecognized input is not an error.
func ParseCategory(requestType string) Category {
	switch requestType {
	case "":
		return CategoryPolice
	case string(CategoryPolice):
		return CategoryPolice
	case string(CategoryFire):
		return CategoryFire
	default:
		return CategoryHospital
	}
}
