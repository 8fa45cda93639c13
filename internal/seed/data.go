package seed

import "github.com/Skotchmaster/affiliate_store/internal/models"

var Categories = []models.Category{
	{Name: "Electronics", Slug: "electronics"},
	{Name: "Fitness", Slug: "fitness"},
	{Name: "Home & Office", Slug: "home-office"},
	{Name: "Fashion", Slug: "fashion"},
	{Name: "Books", Slug: "books"},
	{Name: "Sports", Slug: "sports"},
	{Name: "Beauty", Slug: "beauty"},
	{Name: "Automotive", Slug: "automotive"},
}

func img(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?w=600&h=600&fit=crop"
}

var Products = []models.Product{
	{
		Title:         "Premium Wireless Headphones",
		Description:   "Experience exceptional sound quality with our premium wireless headphones. Featuring advanced noise cancellation technology, these headphones deliver crystal-clear audio for music, calls, and entertainment. With up to 30 hours of battery life and quick-charge capability, you can enjoy uninterrupted listening throughout your day.",
		Price:         199.99,
		Category:      "Electronics",
		Rating:        4.5,
		ImageURLs:     []string{img("1505740420928-5e560c06d30e"), img("1484704849700-f032a568e944")},
		AffiliateLink: "https://example.com/headphones",
	},
	{
		Title:         "Smart Fitness Watch",
		Description:   "Track your fitness goals with this advanced smartwatch featuring GPS, heart rate monitoring, sleep tracking, and 50+ workout modes. Water-resistant design perfect for swimming and outdoor activities.",
		Price:         299.99,
		Category:      "Fitness",
		Rating:        4.8,
		ImageURLs:     []string{img("1523275335684-37898b6baf30"), img("1508685096489-7aacd43bd3b1")},
		AffiliateLink: "https://example.com/smartwatch",
	},
	{
		Title:         "Ergonomic Office Chair",
		Description:   "Comfortable ergonomic office chair with lumbar support, adjustable height, and breathable mesh back. Perfect for long work sessions and maintaining good posture.",
		Price:         449.99,
		Category:      "Home & Office",
		Rating:        4.3,
		ImageURLs:     []string{img("1586023492125-27b2c045efd7")},
		AffiliateLink: "https://example.com/office-chair",
	},
	{
		Title:         "Bluetooth Portable Speaker",
		Description:   "Powerful Bluetooth speaker with 360-degree sound, waterproof design, and 20-hour battery life. Perfect for outdoor adventures and home entertainment.",
		Price:         79.99,
		Category:      "Electronics",
		Rating:        4.2,
		ImageURLs:     []string{img("1608043152269-423dbba4e7e1")},
		AffiliateLink: "https://example.com/speaker",
	},
	{
		Title:         "Running Shoes",
		Description:   "Lightweight running shoes with advanced cushioning technology, breathable mesh upper, and durable rubber outsole. Designed for comfort and performance.",
		Price:         129.99,
		Category:      "Fitness",
		Rating:        4.6,
		ImageURLs:     []string{img("1542291026-7eec264c27ff")},
		AffiliateLink: "https://example.com/running-shoes",
	},
	{
		Title:         "Premium Coffee Maker",
		Description:   "Professional-grade coffee maker with programmable settings, thermal carafe, and built-in grinder. Brew café-quality coffee at home.",
		Price:         189.99,
		Category:      "Home & Office",
		Rating:        4.4,
		ImageURLs:     []string{img("1495474472287-4d71bcdd2085")},
		AffiliateLink: "https://example.com/coffee-maker",
	},
	{
		Title:         "Wireless Charging Pad",
		Description:   "Fast wireless charging pad compatible with all Qi-enabled devices. Sleek design with LED indicator and overcharge protection.",
		Price:         39.99,
		Category:      "Electronics",
		Rating:        4.1,
		ImageURLs:     []string{img("1583863788434-e58a36330cf0")},
		AffiliateLink: "https://example.com/wireless-charger",
	},
	{
		Title:         "Yoga Mat",
		Description:   "Non-slip yoga mat made from eco-friendly materials. Extra thick for comfort and joint protection during workouts and meditation.",
		Price:         49.99,
		Category:      "Fitness",
		Rating:        4.7,
		ImageURLs:     []string{img("1544367567-0f2fcb009e0b")},
		AffiliateLink: "https://example.com/yoga-mat",
	},
	{
		Title:         "Desk Lamp with USB Charging",
		Description:   "LED desk lamp with adjustable brightness, color temperature control, and built-in USB charging ports. Perfect for office and study.",
		Price:         69.99,
		Category:      "Home & Office",
		Rating:        4.5,
		ImageURLs:     []string{img("1507003211169-0a1dd7228f2d")},
		AffiliateLink: "https://example.com/desk-lamp",
	},
	{
		Title:         "Backpack for Laptop",
		Description:   "Durable laptop backpack with padded compartments, water-resistant material, and multiple pockets for organization. Fits laptops up to 15.6 inches.",
		Price:         89.99,
		Category:      "Fashion",
		Rating:        4.3,
		ImageURLs:     []string{img("1553062407-98eeb64c6a62")},
		AffiliateLink: "https://example.com/laptop-backpack",
	},
}
