package catalog

// Fixed trip inventory; stands in for the operator-managed trip tables of a
// real backend.
var tripFixture = []TripDetails{
	{
		TripSummary: TripSummary{
			ID:             "trip-1",
			OperatorName:   "Express Lines",
			DepartureTime:  "06:00 AM",
			ArrivalTime:    "02:30 PM",
			Duration:       "8h 30m",
			Price:          89,
			AvailableSeats: 12,
			TotalSeats:     45,
			BusType:        "AC Sleeper",
			Amenities:      []string{"wifi", "charging", "meals"},
			Rating:         4.5,
			ReviewCount:    234,
		},
		From: "New York",
		To:   "Los Angeles",
		Date: "2024-01-15",
		BoardingPoints: []string{
			"Port Authority Bus Terminal - 625 8th Ave",
			"Penn Station - 4 Pennsylvania Plaza",
			"Grand Central Terminal - 89 E 42nd St",
			"Brooklyn Bridge Terminal - 130 Livingston St",
		},
	},
	{
		TripSummary: TripSummary{
			ID:             "trip-2",
			OperatorName:   "Comfort Travel",
			DepartureTime:  "08:30 AM",
			ArrivalTime:    "05:15 PM",
			Duration:       "8h 45m",
			Price:          75,
			AvailableSeats: 8,
			TotalSeats:     40,
			BusType:        "AC Semi-Sleeper",
			Amenities:      []string{"wifi", "charging"},
			Rating:         4.2,
			ReviewCount:    156,
		},
		From: "New York",
		To:   "Los Angeles",
		Date: "2024-01-15",
		BoardingPoints: []string{
			"Port Authority Bus Terminal - 625 8th Ave",
			"Times Square Terminal - 1500 Broadway",
			"Union Square Station - 14th St & Broadway",
			"Lower East Side Terminal - 165 Ludlow St",
		},
	},
	{
		TripSummary: TripSummary{
			ID:             "trip-3",
			OperatorName:   "Premium Coach",
			DepartureTime:  "10:00 AM",
			ArrivalTime:    "07:00 PM",
			Duration:       "9h 00m",
			Price:          120,
			AvailableSeats: 15,
			TotalSeats:     35,
			BusType:        "Luxury AC",
			Amenities:      []string{"wifi", "charging", "meals", "entertainment"},
			Rating:         4.8,
			ReviewCount:    89,
		},
		From: "New York",
		To:   "Los Angeles",
		Date: "2024-01-15",
		BoardingPoints: []string{
			"Luxury Terminal Manhattan - 350 W 42nd St",
			"Premium Lounge Midtown - 200 Park Ave",
			"Executive Center Downtown - 100 Church St",
		},
	},
	{
		TripSummary: TripSummary{
			ID:             "trip-4",
			OperatorName:   "Budget Express",
			DepartureTime:  "11:30 AM",
			ArrivalTime:    "08:45 PM",
			Duration:       "9h 15m",
			Price:          55,
			AvailableSeats: 20,
			TotalSeats:     50,
			BusType:        "AC Seater",
			Amenities:      []string{"charging"},
			Rating:         3.9,
			ReviewCount:    312,
		},
		From: "New York",
		To:   "Los Angeles",
		Date: "2024-01-15",
		BoardingPoints: []string{
			"Budget Terminal Queens - 45-18 Court Sq",
			"Economy Stop Brooklyn - 625 Atlantic Ave",
			"Value Station Bronx - 149th St & 3rd Ave",
			"Express Point Staten Island - 1 Bay St",
		},
	},
	{
		TripSummary: TripSummary{
			ID:             "trip-5",
			OperatorName:   "Night Rider",
			DepartureTime:  "11:00 PM",
			ArrivalTime:    "07:30 AM",
			Duration:       "8h 30m",
			Price:          95,
			AvailableSeats: 6,
			TotalSeats:     42,
			BusType:        "AC Sleeper",
			Amenities:      []string{"wifi", "charging", "blanket"},
			Rating:         4.3,
			ReviewCount:    178,
		},
		From: "New York",
		To:   "Los Angeles",
		Date: "2024-01-15",
		BoardingPoints: []string{
			"Night Terminal Manhattan - 460 W 42nd St",
			"Late Night Hub Brooklyn - 4 MetroTech Center",
			"Overnight Station Queens - 47-01 111th St",
		},
	},
}

// Seats already sold on every trip; the grid marks these unavailable.
var bookedSeats = map[string]bool{
	"1A": true, "1B": true, "2C": true, "3A": true,
	"4D": true, "5B": true, "6A": true, "7C": true,
}
