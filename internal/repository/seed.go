package repository

import "product-dashboard/internal/model"

// SeedProducts returns a fresh copy of the sample catalogue used when
// nothing has been stored yet.
func SeedProducts() []model.Product {
	return []model.Product{
		seed("1", "Wireless Headphones", 79.99, "Electronics", 45, "Premium noise-cancelling wireless headphones with 30-hour battery life"),
		seed("2", "Smart Watch", 199.99, "Electronics", 8, "Fitness tracking smartwatch with heart rate monitor and GPS"),
		seed("3", "Laptop Stand", 34.99, "Accessories", 120, "Ergonomic aluminum laptop stand with adjustable height"),
		seed("4", "Mechanical Keyboard", 129.99, "Electronics", 3, "RGB mechanical gaming keyboard with cherry MX switches"),
		seed("5", "Desk Lamp", 42.50, "Furniture", 67, "LED desk lamp with touch controls and adjustable brightness"),
		seed("6", "Office Chair", 299.99, "Furniture", 15, "Ergonomic office chair with lumbar support and breathable mesh"),
		seed("7", "USB-C Cable", 12.99, "Accessories", 250, "Durable braided USB-C cable with fast charging support"),
		seed("8", "Notebook Set", 18.99, "Stationery", 95, "Premium hardcover notebook set with dotted pages"),
		seed("9", "Wireless Mouse", 29.99, "Electronics", 2, "Ergonomic wireless mouse with precision tracking"),
		seed("10", "Monitor Stand", 54.99, "Accessories", 38, "Dual monitor stand with cable management"),
	}
}

func seed(id, name string, price float64, category string, stock int, description string) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Category:    category,
		Stock:       model.IntPtr(stock),
		Description: model.StringPtr(description),
	}
}
