package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// DefaultCategoryID is assumed for created and updated products,
// the dashboard does not manage categories.
const DefaultCategoryID = 1

type (
	Product struct {
		ID          int64
		Title       string
		Price       float64
		Description string
		Category    *Category
		Images      []string
	}

	Category struct {
		ID   int64
		Name string
	}
)

// CategoryName returns the category name, or "N/A" for products
// without a category.
func (p Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return "N/A"
	}
	return p.Category.Name
}

// FirstImage returns the first image URL, the only one the dashboard
// displays.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductDraft holds the user-entered fields of the create and edit
// forms.
type ProductDraft struct {
	Title       string
	Price       float64
	Description string
	Image       string
}
