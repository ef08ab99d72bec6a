package models

// UpdateBeerRequest is a whole-record replacement from the edit form.
// Immutable fields (user id, timestamp, image URL) are never accepted here.
type UpdateBeerRequest struct {
	BeerName     string   `json:"beer_name"`
	Brand        string   `json:"brand"`
	Manufacturer string   `json:"manufacturer"`
	ABV          string   `json:"abv"`
	Capacity     string   `json:"capacity"`
	Hops         string   `json:"hops"`
	IsNotBeer    bool     `json:"is_not_beer"`
	WebsiteURL   *string  `json:"website_url"`
	HasDrunk     bool     `json:"has_drunk"`
	Memo         *string  `json:"memo"`
	Rating       *float64 `json:"rating"` // 0.0–5.0
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
