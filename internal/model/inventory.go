package model

// Hotel is a catalog entry for a bookable hotel stay. Price is the full
// amount charged for a booking of this hotel.
type Hotel struct {
	ID          string   `json:"_id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Location    string   `json:"location" yaml:"location"`
	Price       int64    `json:"price" yaml:"price"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Amenities   []string `json:"amenities" yaml:"amenities"`
	ImageURL    string   `json:"imageUrl" yaml:"image_url"`
	Description string   `json:"description" yaml:"description"`
}

// Airport identifies one end of a flight.
type Airport struct {
	Code string `json:"code" yaml:"code"`
	City string `json:"city" yaml:"city"`
}

// Flight is a catalog entry for a single scheduled flight.
type Flight struct {
	ID            string  `json:"_id" yaml:"id"`
	From          Airport `json:"from" yaml:"from"`
	To            Airport `json:"to" yaml:"to"`
	DepartureTime string  `json:"departureTime" yaml:"departure_time"`
	ArrivalTime   string  `json:"arrivalTime" yaml:"arrival_time"`
	Duration      string  `json:"duration" yaml:"duration"`
	Airline       string  `json:"airline" yaml:"airline"`
	Price         int64   `json:"price" yaml:"price"`
}

// Train is a catalog entry for a train service. Trains can be browsed but
// not booked.
type Train struct {
	ID            string `json:"_id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	From          string `json:"from" yaml:"from"`
	To            string `json:"to" yaml:"to"`
	DepartureTime string `json:"departureTime" yaml:"departure_time"`
	ArrivalTime   string `json:"arrivalTime" yaml:"arrival_time"`
	Price         int64  `json:"price" yaml:"price"`
}
