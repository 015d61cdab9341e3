// internal/models/part.go
package models

// UnknownSeller is substituted when a part's seller has no profile row.
const UnknownSeller = "Unknown seller"

type Part struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Price          float64  `json:"price"`
	Condition      string   `json:"condition"`
	ImageURL       string   `json:"image_url,omitempty"`
	CompatibleCars []string `json:"compatible_cars,omitempty"`
	SellerID       string   `json:"-"`
	Seller         Seller   `json:"seller"`
}

type Seller struct {
	Username string `json:"username"`
}
