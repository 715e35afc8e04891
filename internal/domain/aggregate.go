package domain

import (
	"fmt"
	"time"
)

// The trip⋈country queries return a cross join: the same trip id recurs once
// per associated country. BuildTrips and BuildClientTrips fold those flat rows
// back into nested objects using two first-seen-wins accumulators, one keyed
// by trip id and one by country id. Input order determines output order, and
// repeated country references within one trip share the exact same *Country
// value rather than copies.

// TripCountryRow is one flat row of the trips-to-countries join.
type TripCountryRow struct {
	TripID      int
	TripName    string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	MaxPeople   int
	CountryID   int
	CountryName string
}

// ClientTripRow extends TripCountryRow with the registration columns of the
// client-scoped join. RegisteredAt and PaymentDate carry the raw YYYYMMDD
// integer encoding; PaymentDate is nil when the registration is unpaid.
type ClientTripRow struct {
	TripCountryRow
	RegisteredAt int
	PaymentDate  *int
}

// BuildTrips folds flat join rows into distinct trips, each owning a
// deduplicated, insertion-ordered list of shared country references.
func BuildTrips(rows []TripCountryRow) []*Trip {
	trips := make(map[int]*Trip)
	countries := make(map[int]*Country)
	order := []*Trip{}

	for _, row := range rows {
		c := resolveCountry(countries, row)

		t, ok := trips[row.TripID]
		if !ok {
			t = &Trip{
				ID:          row.TripID,
				Name:        row.TripName,
				Description: row.Description,
				StartDate:   row.StartDate,
				EndDate:     row.EndDate,
				MaxPeople:   row.MaxPeople,
			}
			trips[row.TripID] = t
			order = append(order, t)
		}
		appendCountry(t, c)
	}

	return order
}

// BuildClientTrips folds client-scoped join rows into distinct ClientTrip
// views, decoding the integer-coded registration dates along the way.
// A date column that does not decode is a corrupt row, not a domain outcome,
// so it surfaces as an error; an absent payment date is simply nil.
func BuildClientTrips(rows []ClientTripRow) ([]*ClientTrip, error) {
	views := make(map[int]*ClientTrip)
	countries := make(map[int]*Country)
	order := []*ClientTrip{}

	for _, row := range rows {
		c := resolveCountry(countries, row.TripCountryRow)

		v, ok := views[row.TripID]
		if !ok {
			registeredAt, err := DecodeDate(row.RegisteredAt)
			if err != nil {
				return nil, fmt.Errorf("trip %d: registered_at: %w", row.TripID, err)
			}
			v = &ClientTrip{
				Trip: &Trip{
					ID:          row.TripID,
					Name:        row.TripName,
					Description: row.Description,
					StartDate:   row.StartDate,
					EndDate:     row.EndDate,
					MaxPeople:   row.MaxPeople,
				},
				RegisteredAt: registeredAt,
			}
			if row.PaymentDate != nil {
				paidAt, err := DecodeDate(*row.PaymentDate)
				if err != nil {
					return nil, fmt.Errorf("trip %d: payment_date: %w", row.TripID, err)
				}
				v.PaymentDate = &paidAt
			}
			views[row.TripID] = v
			order = append(order, v)
		}
		appendCountry(v.Trip, c)
	}

	return order, nil
}

// resolveCountry returns the accumulator's entry for the row's country,
// inserting it on first sight. First-seen wins for the name.
func resolveCountry(countries map[int]*Country, row TripCountryRow) *Country {
	c, ok := countries[row.CountryID]
	if !ok {
		c = &Country{ID: row.CountryID, Name: row.CountryName}
		countries[row.CountryID] = c
	}
	return c
}

// appendCountry adds c to the trip's country list unless the exact same
// reference is already present. Identity comparison is intentional: every
// occurrence of a country id resolves to one shared *Country, so pointer
// equality is equivalent to id equality here.
func appendCountry(t *Trip, c *Country) {
	for _, existing := range t.Countries {
		if existing == c {
			return
		}
	}
	t.Countries = append(t.Countries, c)
}
