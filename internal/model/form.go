package model

import (
	"strconv"
	"strings"
)

// FormFields holds the raw text a user typed into the product form.
type FormFields struct {
	Name        string `json:"name" form:"name"`
	Price       string `json:"price" form:"price"`
	Category    string `json:"category" form:"category"`
	Stock       string `json:"stock" form:"stock"`
	Description string `json:"description" form:"description"`
}

// FormFromProduct pre-fills the form for editing an existing product.
func FormFromProduct(p Product) FormFields {
	f := FormFields{
		Name:     p.Name,
		Price:    strconv.FormatFloat(p.Price, 'f', -1, 64),
		Category: p.Category,
	}
	if p.Stock != nil {
		f.Stock = strconv.Itoa(*p.Stock)
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	return f
}

// ToProduct normalizes validated fields into a product with the given id.
// Text is trimmed; a blank stock or description becomes absent.
// Callers must validate first: unparsable numbers are reported as errors.
func (f FormFields) ToProduct(id string) (Product, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return Product{}, ErrInvalidProduct
	}

	p := Product{
		ID:       id,
		Name:     strings.TrimSpace(f.Name),
		Price:    price,
		Category: strings.TrimSpace(f.Category),
	}

	if raw := strings.TrimSpace(f.Stock); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return Product{}, ErrInvalidProduct
		}
		p.Stock = &stock
	}

	if desc := strings.TrimSpace(f.Description); desc != "" {
		p.Description = &desc
	}

	return p, nil
}
