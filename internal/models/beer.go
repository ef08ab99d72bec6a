package models

import (
	"database/sql"
	"time"
)

// AnalysisResult is the ephemeral output of one vision-analysis call.
// Textual fields are never empty: absent or null values are normalized to the
// configured "unknown" sentinel by the gemini mapper before this struct is
// built. WebsiteURL is the one exception — empty means the model returned no
// usable absolute URL.
type AnalysisResult struct {
	BeerName     string
	Brand        string
	Manufacturer string
	ABV          string
	Capacity     string
	Hops         string
	IsNotBeer    bool
	WebsiteURL   string
}

// BeerRecord is one saved analysis owned by a single user.
type BeerRecord struct {
	ID           string // assigned by the store; empty before first persistence
	UserID       string
	BeerName     string
	Brand        string
	Manufacturer string
	ABV          string
	Capacity     string
	Hops         string
	IsNotBeer    bool
	WebsiteURL   sql.NullString
	ImageURL     string // empty when the upload step was skipped
	HasDrunk     bool
	Memo         sql.NullString
	Rating       sql.NullFloat64 // 0.0–5.0
	Timestamp    time.Time       // creation time, immutable
}

// FromAnalysis copies analysis fields into a new unsaved record.
func FromAnalysis(res AnalysisResult, userID, imageURL string, now time.Time) *BeerRecord {
	rec := &BeerRecord{
		UserID:       userID,
		BeerName:     res.BeerName,
		Brand:        res.Brand,
		Manufacturer: res.Manufacturer,
		ABV:          res.ABV,
		Capacity:     res.Capacity,
		Hops:         res.Hops,
		IsNotBeer:    res.IsNotBeer,
		ImageURL:     imageURL,
		HasDrunk:     false,
		Timestamp:    now,
	}
	if res.WebsiteURL != "" {
		rec.WebsiteURL = sql.NullString{String: res.WebsiteURL, Valid: true}
	}
	return rec
}
