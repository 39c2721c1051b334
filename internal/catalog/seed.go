package catalog

import "context"

// Factory catalog loaded on first boot, mirroring the storefront's
// built-in product set.
var seedProducts = []Product{
	{
		ID: "BM216", SKU: "BM-216", Name: "Dish Rack - BM 216",
		Price: 1800, OriginalPrice: 2500,
		Images:      []string{"https://images.unsplash.com/photo-1548036328-c9fa89d128fa?q=80&w=1000&auto=format&fit=crop"},
		Description: []string{"Premium dish rack for modern kitchens."},
		Features:    []string{"Steel construction", "Easy drainage"},
		Category:    "Kitchen Accessories", Stock: true,
	},
	{
		ID: "BM147", SKU: "BM-147", Name: "Kitchen oven Cabinet - Code BM 147",
		Price: 9000, OriginalPrice: 10500,
		Images:      []string{"https://images.unsplash.com/photo-1556911220-e15b29be8c8f?q=80&w=1000&auto=format&fit=crop"},
		Description: []string{"Spacious oven cabinet."},
		Features:    []string{"Heat resistant", "Multiple shelves"},
		Category:    "Kitchen Cabinets", Stock: true,
	},
	{
		ID: "BM209", SKU: "BM-209", Name: "Kitchen Cabinet - BM209",
		Price: 10000, OriginalPrice: 11500,
		Images:      []string{"https://images.unsplash.com/photo-1556911261-6bd741360f01?q=80&w=1000&auto=format&fit=crop"},
		Description: []string{"Elegant kitchen cabinet."},
		Features:    []string{"Premium finish", "Durable"},
		Category:    "Kitchen Cabinets", Stock: true,
	},
	{
		ID: "BM207", SKU: "BM-207", Name: "Modern Kitchen Shelf - BM 207",
		Price: 6000, OriginalPrice: 6500,
		Images:      []string{"https://images.unsplash.com/photo-1591637333184-19aa84b3e01f?q=80&w=1000&auto=format&fit=crop"},
		Description: []string{"Multi-layer kitchen shelf."},
		Features:    []string{"Space saving", "Heavy duty"},
		Category:    "Kitchen Storage", Stock: true,
	},
	{
		ID: "BM161", SKU: "BM-161", Name: "Premium Leather Handbag - BM161",
		Price: 1250, OriginalPrice: 1850,
		Images: []string{
			"https://images.unsplash.com/photo-1548036328-c9fa89d128fa?q=80&w=1000&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1590874103328-eac38a683ce7?q=80&w=1000&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1584917865442-de89df76afd3?q=80&w=1000&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1594223274512-ad4803739b7c?q=80&w=1000&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1575032617751-6ddec2089882?q=80&w=1000&auto=format&fit=crop",
		},
		Description: []string{"Stylish and durable premium leather bag."},
		Features:    []string{"Pure Leather", "High-quality zippers", "Spacious compartments"},
		Category:    "Bags", Stock: true,
	},
	{
		ID: "BM170", SKU: "BM-170", Name: "Simple shoe rack - BM170",
		Price: 3000, OriginalPrice: 3500,
		Images:      []string{"https://images.unsplash.com/photo-1595945731027-626093153da3?q=80&w=1000&auto=format&fit=crop"},
		Description: []string{"Minimalist shoe storage."},
		Features:    []string{"3-Tier", "Steel"},
		Category:    "Home Organizers", Stock: true,
	},
}

// Seed loads the factory catalog and derives the category set from it.
// No-op when products already exist.
func (r *Repo) Seed(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, p := range seedProducts {
		if _, err := r.CreateProduct(ctx, p); err != nil {
			return err
		}
		if _, err := r.AddCategory(ctx, p.Category); err != nil {
			return err
		}
	}
	return nil
}
