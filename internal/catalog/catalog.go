// Package catalog holds the build-time product list and the pure
// derivations the storefront renders from: category filter, name search,
// sorting and price formatting. No I/O happens here.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/devGospel/jetstores/internal/models"
)

// Sort options offered by the storefront. Unknown options behave like
// SortDefault and preserve input order.
const (
	SortDefault      = "default"
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
	SortName         = "name"
)

// Products is the static catalog. Prices are NGN, converted from USD at a
// fixed 1500 rate when the catalog was authored.
var Products = []models.Product{
	{
		ID:          1,
		Name:        "Wireless Headphones",
		Price:       99.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1590658268037-6bf12165a8df",
		Description: "High-quality wireless headphones with noise cancellation.",
		Category:    "Electronics",
	},
	{
		ID:          2,
		Name:        "Smartwatch",
		Price:       199.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1546868871-7041f2a55e12",
		Description: "Sleek smartwatch with fitness tracking and notifications.",
		Category:    "Wearables",
	},
	{
		ID:          3,
		Name:        "Leather Backpack",
		Price:       149.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62",
		Description: "Premium leather backpack for daily use.",
		Category:    "Accessories",
	},
	{
		ID:          4,
		Name:        "Sunglasses",
		Price:       79.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1572635196237-14b3f281503f",
		Description: "Stylish polarized sunglasses for all occasions.",
		Category:    "Accessories",
	},
	{
		ID:          5,
		Name:        "Bluetooth Speaker",
		Price:       59.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1605649487212-47bdab064df7",
		Description: "Portable Bluetooth speaker with rich sound.",
		Category:    "Electronics",
	},
	{
		ID:          6,
		Name:        "Fitness Tracker",
		Price:       129.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1576243345696-84e237745d84",
		Description: "Track your steps, heart rate, and sleep patterns.",
		Category:    "Wearables",
	},
	{
		ID:          7,
		Name:        "Laptop Stand",
		Price:       39.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1629654297299-c8506221ca97",
		Description: "Ergonomic laptop stand for comfortable working.",
		Category:    "Accessories",
	},
	{
		ID:          8,
		Name:        "USB-C Charger",
		Price:       29.99 * 1500,
		ImageURL:    "https://images.unsplash.com/photo-1606292369077-54b64a1b7a04",
		Description: "Fast-charging USB-C charger for all devices.",
		Category:    "Electronics",
	},
}

// ByID returns the catalog product with the given id, or nil.
func ByID(id int) *models.Product {
	for i := range Products {
		if Products[i].ID == id {
			return &Products[i]
		}
	}
	return nil
}

// Categories derives the unique categories in first-occurrence order.
func Categories(products []models.Product) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Filter returns the products matching the selected category (empty matches
// all) and whose name contains the query case-insensitively.
func Filter(products []models.Product, category, query string) []models.Product {
	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders products by the given option. The sort is stable, so ties and
// unknown options preserve input order. The input slice is not mutated.
func Sort(products []models.Product, option string) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		switch option {
		case SortPriceLowHigh:
			return out[i].Price < out[j].Price
		case SortPriceHighLow:
			return out[i].Price > out[j].Price
		case SortName:
			return out[i].Name < out[j].Name
		default:
			return false
		}
	})
	return out
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price as Naira with locale grouping and exactly two
// fraction digits, e.g. "₦149,985.00".
func FormatPrice(price float64) string {
	return pricePrinter.Sprintf("₦%v", number.Decimal(price,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
