package categorizer

import "fjacquet/leak-detector/internal/models"

// DefaultCategories returns the built-in keyword table. Order matters: a text
// matching keywords of two categories gets the one listed first.
func DefaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{
			Name: models.CategoryFood,
			Keywords: []string{
				"swiggy", "zomato", "restaurant", "cafe", "food", "pizza", "domino",
				"mcdonald", "kfc", "burger", "starbucks", "bakery", "eatery", "dining",
			},
		},
		{
			Name: models.CategoryTravel,
			Keywords: []string{
				"uber", "olacabs", "rapido", "irctc", "makemytrip", "goibibo", "flight",
				"airline", "indigo", "railway", "metro", "petrol", "fuel", "toll", "fastag",
			},
		},
		{
			Name: models.CategoryShopping,
			Keywords: []string{
				"amazon", "flipkart", "myntra", "ajio", "nykaa", "meesho", "bigbasket",
				"blinkit", "dmart", "mall", "shopping", "retail",
			},
		},
		{
			Name: models.CategoryEntertainment,
			Keywords: []string{
				"netflix", "hotstar", "bookmyshow", "pvr", "inox", "cinema", "movie",
				"gaming", "steam", "concert",
			},
		},
		{
			Name: models.CategorySubscriptions,
			Keywords: []string{
				"spotify", "subscription", "membership", "renewal", "youtube", "prime",
				"apple", "google play", "icloud", "gym",
			},
		},
	}
}
