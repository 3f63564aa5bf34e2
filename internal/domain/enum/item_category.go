package enum

// ItemCategory splits menu items between the kitchen and the bar. Every item
// resolves to exactly one category through its subcategory.
type ItemCategory string

const (
	ItemCategoryFood  ItemCategory = "FOOD"
	ItemCategoryDrink ItemCategory = "DRINK"
)
