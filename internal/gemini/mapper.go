package gemini

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/38tter/beer-analyzer-sub000/internal/models"
)

// beerPayload is the wire shape of the model's answer. The struct tags are the
// explicit field-name mapping table from the snake_case payload to the domain
// record; pointers distinguish absent/null fields from present ones.
type beerPayload struct {
	BeerName     *string `json:"beer_name"`
	Brand        *string `json:"brand"`
	Manufacturer *string `json:"manufacturer"`
	ABV          *string `json:"abv"`
	Capacity     *string `json:"capacity"`
	Hops         *string `json:"hops"`
	IsNotBeer    *bool   `json:"is_not_beer"`
	WebsiteURL   *string `json:"website_url"`
}

// MapAnalysis validates the extracted JSON document and converts it into an
// AnalysisResult. Absent, null, or empty textual fields become the sentinel:
// persisted records assume no missing text, so the substitution happens here
// and nowhere else. Type mismatches fail with ErrDecode.
func MapAnalysis(jsonStr, sentinel string) (*models.AnalysisResult, error) {
	var payload beerPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	res := &models.AnalysisResult{
		BeerName:     textOr(payload.BeerName, sentinel),
		Brand:        textOr(payload.Brand, sentinel),
		Manufacturer: textOr(payload.Manufacturer, sentinel),
		ABV:          textOr(payload.ABV, sentinel),
		Capacity:     textOr(payload.Capacity, sentinel),
		Hops:         textOr(payload.Hops, sentinel),
	}
	if payload.IsNotBeer != nil {
		res.IsNotBeer = *payload.IsNotBeer
	}
	if payload.WebsiteURL != nil {
		res.WebsiteURL = absoluteURLOrEmpty(*payload.WebsiteURL)
	}
	return res, nil
}

func textOr(s *string, sentinel string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return sentinel
	}
	return *s
}

// absoluteURLOrEmpty keeps only syntactically valid absolute URLs; anything
// else is treated as absent.
func absoluteURLOrEmpty(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ""
	}
	return u.String()
}
