package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RaceTypes is the closed set of race headings the portal renders for a
// swim meet. Submitted results must match one of these exactly or the
// section is skipped.
var RaceTypes = []string{
	"200 MR",
	"200 Free",
	"200 IM",
	"50 Free",
	"100 Fly",
	"100 Free",
	"500 Free",
	"200 FR",
	"100 Back",
	"100 Breast",
	"400 FR",
}

// ResultItem is one finishing entry: a single swimmer for individual races,
// several for relays. Names are stored "First Last"; the portal wants
// "Last, First" and the rewrite happens at submission time.
type ResultItem struct {
	Swimmers []string `json:"swimmers" validate:"required,min=1,dive,required"`
	Place    int      `json:"place"`
	Time     string   `json:"time"`
}

// RaceResult holds the ordered entries for one race of a meet.
type RaceResult struct {
	Race    string       `json:"race" validate:"required"`
	Results []ResultItem `json:"results" validate:"dive"`
}

// EventInfo is one row of a sport's schedule table as scraped from the
// portal.
type EventInfo struct {
	Date     string `json:"date"`
	Result   string `json:"result"`
	Opponent string `json:"opponent"`
}

func (r *RaceResult) Validate() error {
	return validate.Struct(r)
}
