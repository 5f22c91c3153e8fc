package services

import "flowerhub/models"

// FallbackProducts is served when the products collection has not been
// provisioned yet, so a fresh deployment still has a browsable shop.
var FallbackProducts = []models.Product{
	{
		ID:          "1",
		Name:        "Classic Red Roses",
		Description: "A timeless dozen of long-stemmed red roses, perfect for expressing love and passion.",
		Price:       1499,
		Category:    "Bouquets",
		Image:       "https://images.unsplash.com/photo-1518709766631-a6a7f45921c3?auto=format&fit=crop&q=80&w=800",
		Stock:       20,
		Featured:    true,
	},
	{
		ID:          "2",
		Name:        "Spring Morning",
		Description: "A vibrant mix of tulips, daffodils, and daisies to brighten up any room.",
		Price:       1299,
		Category:    "Bouquets",
		Image:       "https://images.unsplash.com/photo-1526047932273-341f2a7631f9?auto=format&fit=crop&q=80&w=800",
		Stock:       15,
		Featured:    true,
	},
	{
		ID:          "3",
		Name:        "White Orchid",
		Description: "Elegant and sophisticated white orchid plant in a ceramic pot.",
		Price:       2499,
		Category:    "Plants",
		Image:       "https://images.unsplash.com/photo-1566938064504-a38b584a2264?auto=format&fit=crop&q=80&w=800",
		Stock:       8,
	},
	{
		ID:          "4",
		Name:        "Pink Peony Bunch",
		Description: "Lush and fragrant pink peonies, a seasonal favorite.",
		Price:       1899,
		Category:    "Bouquets",
		Image:       "https://images.unsplash.com/photo-1563241527-3af69713220c?auto=format&fit=crop&q=80&w=800",
		Stock:       5,
		Featured:    true,
	},
	{
		ID:          "5",
		Name:        "Succulent Trio",
		Description: "Three low-maintenance succulents in a wooden trough.",
		Price:       999,
		Category:    "Plants",
		Image:       "https://images.unsplash.com/photo-1459411552884-841db9b3cc2a?auto=format&fit=crop&q=80&w=800",
		Stock:       25,
	},
	{
		ID:          "6",
		Name:        "Wedding Elegance",
		Description: "A premium bridal bouquet with white roses, lilies, and greenery.",
		Price:       3999,
		Category:    "Wedding",
		Image:       "https://images.unsplash.com/photo-1519741497674-611481863552?auto=format&fit=crop&q=80&w=800",
		Stock:       10,
		Featured:    true,
	},
}

func fallbackProducts() []models.Product {
	return append([]models.Product(nil), FallbackProducts...)
}

func fallbackCategories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, p := range FallbackProducts {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return cats
}
