package photo

import "strings"

// StockEntry is one built-in catalog photo.
type StockEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Asset    string   `json:"asset"`
}

// stockCatalog is the built-in picker catalog, grouped by category.
var stockCatalog = []StockEntry{
	// Fruits
	{ID: "apple", Title: "Apple", Category: "Fruits", Tags: []string{"apple", "fruit", "red", "fresh"}, Asset: "assets/stock/fruits/apple.jpg"},
	{ID: "banana", Title: "Banana", Category: "Fruits", Tags: []string{"banana", "fruit", "yellow", "tropical"}, Asset: "assets/stock/fruits/banana.jpg"},
	{ID: "orange", Title: "Orange", Category: "Fruits", Tags: []string{"orange", "fruit", "citrus", "vitamin-c"}, Asset: "assets/stock/fruits/orange.jpg"},
	{ID: "strawberry", Title: "Strawberry", Category: "Fruits", Tags: []string{"strawberry", "fruit", "red", "berry"}, Asset: "assets/stock/fruits/strawberry.jpg"},
	{ID: "mango", Title: "Mango", Category: "Fruits", Tags: []string{"mango", "fruit", "tropical", "orange"}, Asset: "assets/stock/fruits/mango.jpg"},

	// Vegetables
	{ID: "broccoli", Title: "Broccoli", Category: "Vegetables", Tags: []string{"broccoli", "vegetable", "green", "cruciferous"}, Asset: "assets/stock/vegetables/broccoli.jpg"},
	{ID: "carrot", Title: "Carrot", Category: "Vegetables", Tags: []string{"carrot", "vegetable", "orange", "root"}, Asset: "assets/stock/vegetables/carrot.jpg"},
	{ID: "tomato", Title: "Tomato", Category: "Vegetables", Tags: []string{"tomato", "vegetable", "red", "nightshade"}, Asset: "assets/stock/vegetables/tomato.jpg"},
	{ID: "spinach", Title: "Spinach", Category: "Vegetables", Tags: []string{"spinach", "vegetable", "green", "leafy"}, Asset: "assets/stock/vegetables/spinach.jpg"},

	// Meats
	{ID: "steak", Title: "Steak", Category: "Meats", Tags: []string{"steak", "beef", "meat", "grilled"}, Asset: "assets/stock/meats/steak.jpg"},
	{ID: "chicken-breast", Title: "Chicken Breast", Category: "Meats", Tags: []string{"chicken", "breast", "meat", "poultry"}, Asset: "assets/stock/meats/chicken-breast.jpg"},
	{ID: "bacon", Title: "Bacon", Category: "Meats", Tags: []string{"bacon", "pork", "meat", "breakfast"}, Asset: "assets/stock/meats/bacon.jpg"},

	// Seafood
	{ID: "salmon", Title: "Salmon", Category: "Seafood", Tags: []string{"salmon", "fish", "seafood", "oily-fish"}, Asset: "assets/stock/seafood/salmon.jpg"},
	{ID: "shrimp", Title: "Shrimp", Category: "Seafood", Tags: []string{"shrimp", "shellfish", "seafood", "prawn"}, Asset: "assets/stock/seafood/shrimp.jpg"},

	// Grains
	{ID: "bread", Title: "Bread", Category: "Grains", Tags: []string{"bread", "grain", "baked", "loaf"}, Asset: "assets/stock/grains/bread.jpg"},
	{ID: "rice", Title: "Rice", Category: "Grains", Tags: []string{"rice", "grain", "white", "staple"}, Asset: "assets/stock/grains/rice.jpg"},

	// Dairy
	{ID: "cheese", Title: "Cheese", Category: "Dairy", Tags: []string{"cheese", "dairy", "aged"}, Asset: "assets/stock/dairy/cheese.jpg"},
	{ID: "yogurt", Title: "Yogurt", Category: "Dairy", Tags: []string{"yogurt", "dairy", "cultured"}, Asset: "assets/stock/dairy/yogurt.jpg"},

	// Pastas
	{ID: "spaghetti", Title: "Spaghetti", Category: "Pastas", Tags: []string{"spaghetti", "pasta", "noodles", "long"}, Asset: "assets/stock/pastas/spaghetti.jpg"},
	{ID: "penne", Title: "Penne", Category: "Pastas", Tags: []string{"penne", "pasta", "tube", "ridged"}, Asset: "assets/stock/pastas/penne.jpg"},

	// Sauces
	{ID: "marinara", Title: "Marinara", Category: "Sauces", Tags: []string{"marinara", "sauce", "tomato", "italian"}, Asset: "assets/stock/sauces/marinara.jpg"},
	{ID: "pesto", Title: "Pesto", Category: "Sauces", Tags: []string{"pesto", "sauce", "basil", "green"}, Asset: "assets/stock/sauces/pesto.jpg"},

	// Sweets
	{ID: "chocolate", Title: "Chocolate", Category: "Sweets", Tags: []string{"chocolate", "sweet", "dessert", "cocoa"}, Asset: "assets/stock/sweets/chocolate.jpg"},
	{ID: "ice-cream", Title: "Ice Cream", Category: "Sweets", Tags: []string{"ice-cream", "sweet", "dessert", "frozen"}, Asset: "assets/stock/sweets/ice-cream.jpg"},

	// Beverages
	{ID: "coffee", Title: "Coffee", Category: "Beverages", Tags: []string{"coffee", "beverage", "hot", "caffeine"}, Asset: "assets/stock/beverages/coffee.jpg"},
	{ID: "tea", Title: "Tea", Category: "Beverages", Tags: []string{"tea", "beverage", "hot", "leaf"}, Asset: "assets/stock/beverages/tea.jpg"},

	// Other
	{ID: "plate", Title: "Plate", Category: "Other", Tags: []string{"plate", "dish", "meal", "generic"}, Asset: "assets/stock/other/plate.jpg"},
}

var stockByID = func() map[string]StockEntry {
	m := make(map[string]StockEntry, len(stockCatalog))
	for _, e := range stockCatalog {
		m[e.ID] = e
	}
	return m
}()

// Catalog returns the full stock catalog in display order.
func Catalog() []StockEntry {
	out := make([]StockEntry, len(stockCatalog))
	copy(out, stockCatalog)
	return out
}

// Lookup finds a stock entry by ID.
func Lookup(id string) (StockEntry, bool) {
	e, ok := stockByID[id]
	return e, ok
}

// SearchStock returns catalog entries whose title or tags contain term
// (case-insensitive). An empty term returns the full catalog.
func SearchStock(term string) []StockEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return Catalog()
	}

	var out []StockEntry
	for _, e := range stockCatalog {
		if strings.Contains(strings.ToLower(e.Title), term) {
			out = append(out, e)
			continue
		}
		for _, tag := range e.Tags {
			if strings.Contains(tag, term) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
