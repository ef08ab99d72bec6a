package models

import "time"

type BeerResponse struct {
	ID           string    `json:"beer_id"`
	BeerName     string    `json:"beer_name"`
	Brand        string    `json:"brand"`
	Manufacturer string    `json:"manufacturer"`
	ABV          string    `json:"abv"`
	Capacity     string    `json:"capacity"`
	Hops         string    `json:"hops"`
	IsNotBeer    bool      `json:"is_not_beer"`
	WebsiteURL   *string   `json:"website_url"`
	ImageURL     string    `json:"image_url"`
	HasDrunk     bool      `json:"has_drunk"`
	Memo         *string   `json:"memo"`
	Rating       *float64  `json:"rating"`
	Timestamp    time.Time `json:"timestamp"`
}

type BeerListResponse struct {
	Beers   []BeerResponse `json:"beers"`
	HasMore bool           `json:"has_more"`
}

type AnalyzeResponse struct {
	Beer BeerResponse `json:"beer"`
}

type PairingResponse struct {
	BeerID     string `json:"beer_id"`
	Suggestion string `json:"suggestion"`
}

type AnonymousAuthResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ToBeerResponse converts a domain record to its API shape.
func ToBeerResponse(rec *BeerRecord) BeerResponse {
	resp := BeerResponse{
		ID:           rec.ID,
		BeerName:     rec.BeerName,
		Brand:        rec.Brand,
		Manufacturer: rec.Manufacturer,
		ABV:          rec.ABV,
		Capacity:     rec.Capacity,
		Hops:         rec.Hops,
		IsNotBeer:    rec.IsNotBeer,
		ImageURL:     rec.ImageURL,
		HasDrunk:     rec.HasDrunk,
		Timestamp:    rec.Timestamp,
	}
	if rec.WebsiteURL.Valid {
		url := rec.WebsiteURL.String
		resp.WebsiteURL = &url
	}
	if rec.Memo.Valid {
		memo := rec.Memo.String
		resp.Memo = &memo
	}
	if rec.Rating.Valid {
		rating := rec.Rating.Float64
		resp.Rating = &rating
	}
	return resp
}

// ToBeerListResponse converts a page of records.
func ToBeerListResponse(recs []BeerRecord, hasMore bool) BeerListResponse {
	beers := make([]BeerResponse, len(recs))
	for i := range recs {
		beers[i] = ToBeerResponse(&recs[i])
	}
	return BeerListResponse{Beers: beers, HasMore: hasMore}
}
