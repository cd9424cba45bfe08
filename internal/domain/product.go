// internal/domain/product.go
package domain

import (
	"errors"
	"time"
)

type Product struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Price         float64           `json:"price"`
	Image         string            `json:"image"`
	Category      string            `json:"category"`
	Brand         string            `json:"brand"`
	PartNumber    string            `json:"partNumber"`
	Compatibility []string          `json:"compatibility"`
	InStock       bool              `json:"inStock"`
	Specs         map[string]string `json:"specs"`
	VendorID      string            `json:"vendorId"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type CreateProductRequest struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Price         float64           `json:"price"`
	Image         string            `json:"image"`
	Category      string            `json:"category"`
	Brand         string            `json:"brand"`
	PartNumber    string            `json:"partNumber"`
	Compatibility []string          `json:"compatibility"`
	InStock       *bool             `json:"inStock"`
	Specs         map[string]string `json:"specs"`
}

func (r *CreateProductRequest) Validate() error {
	if r.Title == "" || r.Description == "" || r.Image == "" ||
		r.Category == "" || r.Brand == "" || r.PartNumber == "" {
		return errors.New("missing required product fields")
	}
	if r.Price <= 0 {
		return errors.New("price must be greater than 0")
	}
	return nil
}
