package domain

// The helpers below are the pure halves of the repository mutations. They
// never modify the slice they are given.

// FindProduct returns the first product whose ID equals id
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// AppendProduct returns products with product added at the end
func AppendProduct(products []Product, product Product) []Product {
	out := make([]Product, 0, len(products)+1)
	out = append(out, products...)
	return append(out, product)
}

// ReplaceProduct swaps the first entry with the given id for product. The
// replacement keeps its own ID, which may differ from id.
func ReplaceProduct(products []Product, id string, product Product) ([]Product, bool) {
	for i, p := range products {
		if p.ID != id {
			continue
		}
		out := make([]Product, len(products))
		copy(out, products)
		out[i] = product
		return out, true
	}
	return products, false
}

// RemoveProducts drops every entry with the given id and reports how many went
func RemoveProducts(products []Product, id string) ([]Product, int) {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out, len(products) - len(out)
}
