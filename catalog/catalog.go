// Package catalog serves the fixed trip inventory the booking funnel
// browses: search results, per-trip details with boarding points, and the
// seat layout for seat selection. It is static data shaping only; there
// are no booking writes and no live seat inventory.
package catalog

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

// TripSummary is a search-result row.
type TripSummary struct {
	ID             string   `json:"id"`
	OperatorName   string   `json:"operatorName"`
	DepartureTime  string   `json:"departureTime"`
	ArrivalTime    string   `json:"arrivalTime"`
	Duration       string   `json:"duration"`
	Price          float64  `json:"price"`
	AvailableSeats int      `json:"availableSeats"`
	TotalSeats     int      `json:"totalSeats"`
	BusType        string   `json:"busType"`
	Amenities      []string `json:"amenities"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"reviewCount"`
}

// TripDetails extends a summary with route and boarding information.
type TripDetails struct {
	TripSummary
	From           string   `json:"from"`
	To             string   `json:"to"`
	Date           string   `json:"date"`
	BoardingPoints []string `json:"boardingPoints"`
}

// Seat is one cell of the seat-selection grid.
type Seat struct {
	ID     string  `json:"id"`
	Number string  `json:"number"`
	Price  float64 `json:"price"`
	Booked bool    `json:"booked"`
}

// Sort keys accepted by Search.
const (
	SortByPrice     = "price"
	SortByDuration  = "duration"
	SortByDeparture = "departure"
	SortByRating    = "rating"
)

// Filter keys accepted by Search.
const (
	FilterAll     = "all"
	FilterAC      = "ac"
	FilterSleeper = "sleeper"
	FilterWifi    = "wifi"
)

// Query narrows and orders search results. Zero values mean "everything,
// fixture order".
type Query struct {
	SortBy   string
	FilterBy string
}

// Catalog is a read-only view over the trip fixture.
type Catalog struct {
	trips   []TripSummary
	details map[string]TripDetails
}

func New() *Catalog {
	details := make(map[string]TripDetails, len(tripFixture))
	trips := make([]TripSummary, 0, len(tripFixture))
	for _, trip := range tripFixture {
		details[trip.ID] = trip
		trips = append(trips, trip.TripSummary)
	}
	return &Catalog{trips: trips, details: details}
}

// Search returns the trips matching the query. The fixture is copied so
// callers can't reorder or mutate the catalog's own data.
func (c *Catalog) Search(q Query) []TripSummary {
	trips := make([]TripSummary, len(c.trips))
	copy(trips, c.trips)

	switch q.FilterBy {
	case "", FilterAll:
		// keep everything
	case FilterAC:
		trips = filterTrips(trips, func(t TripSummary) bool {
			return strings.Contains(t.BusType, "AC")
		})
	case FilterSleeper:
		trips = filterTrips(trips, func(t TripSummary) bool {
			return strings.Contains(t.BusType, "Sleeper")
		})
	case FilterWifi:
		trips = filterTrips(trips, func(t TripSummary) bool {
			return hasAmenity(t, "wifi")
		})
	}

	switch q.SortBy {
	case SortByPrice:
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Price < trips[j].Price })
	case SortByDuration:
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Duration < trips[j].Duration })
	case SortByDeparture:
		sort.SliceStable(trips, func(i, j int) bool {
			return departureMinutes(trips[i].DepartureTime) < departureMinutes(trips[j].DepartureTime)
		})
	case SortByRating:
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Rating > trips[j].Rating })
	}

	return trips
}

// Details returns the full record for a trip.
func (c *Catalog) Details(id string) (*TripDetails, error) {
	details, exists := c.details[id]
	if !exists {
		return nil, core.ErrTripNotFound
	}
	return &details, nil
}

// SeatMap generates the seat-selection grid for a trip: four seats per row
// (two per side), numbered 1A..1D, 2A.. and so on, with a fixed set of
// already-booked seats.
func (c *Catalog) SeatMap(id string) ([]Seat, error) {
	details, exists := c.details[id]
	if !exists {
		return nil, core.ErrTripNotFound
	}

	const seatsPerRow = 4
	rows := (details.TotalSeats + seatsPerRow - 1) / seatsPerRow

	seats := make([]Seat, 0, details.TotalSeats)
	for row := 1; row <= rows; row++ {
		for pos := 1; pos <= seatsPerRow; pos++ {
			if len(seats) >= details.TotalSeats {
				break
			}
			number := seatNumber(row, pos)
			seats = append(seats, Seat{
				ID:     seatID(row, pos),
				Number: number,
				Price:  details.Price,
				Booked: bookedSeats[number],
			})
		}
	}
	return seats, nil
}

func seatNumber(row, pos int) string {
	// 1A, 1B, 1C, 1D
	return strconv.Itoa(row) + string(rune('A'+pos-1))
}

func seatID(row, pos int) string {
	return "seat-" + strconv.Itoa(row) + "-" + strconv.Itoa(pos)
}

func filterTrips(trips []TripSummary, keep func(TripSummary) bool) []TripSummary {
	out := trips[:0]
	for _, t := range trips {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func hasAmenity(t TripSummary, amenity string) bool {
	for _, a := range t.Amenities {
		if a == amenity {
			return true
		}
	}
	return false
}

// departureMinutes parses a "06:00 AM" style clock into minutes since
// midnight for sorting. Unparseable values sort first.
func departureMinutes(s string) int {
	t, err := time.Parse("03:04 PM", s)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}
