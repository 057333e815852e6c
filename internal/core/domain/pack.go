package domain

// PackID identifies an adventure pack.
type PackID string

const DefaultPack PackID = "standard"

// AdventurePack themes a clone's trip.
type AdventurePack struct {
	ID          PackID `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	IsPremium   bool   `json:"isPremium" yaml:"premium"`
}

// TravelCategory groups destinations by distance.
type TravelCategory string

const (
	TravelLocal            TravelCategory = "local"
	TravelRegional         TravelCategory = "regional"
	TravelInternational    TravelCategory = "international"
	TravelIntercontinental TravelCategory = "intercontinental"
)

// TravelEstimate is the simulated travel time for a destination.
type TravelEstimate struct {
	Hours    float64        `json:"hours" yaml:"hours"`
	Category TravelCategory `json:"category" yaml:"category"`
}
