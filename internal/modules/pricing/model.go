// README: Toll rate rows, itinerary segments, and fare results.
package pricing

// Rate is one row of the toll_rates table. Rates holds the raw class cells keyed by
// vehicle class id; a missing key means the cell was NULL.
type Rate struct {
	HighwayID   string            `json:"highway_id,omitempty"`
	HighwayName string            `json:"highway_name,omitempty"`
	EntryID     string            `json:"entry_id,omitempty"`
	EntryName   string            `json:"entry_name"`
	ExitID      string            `json:"exit_id,omitempty"`
	ExitName    string            `json:"exit_name"`
	Journey     string            `json:"journey,omitempty"`
	Rates       map[string]string `json:"rates"`
	DistanceKm  string            `json:"distance_km,omitempty"`
	TollSystem  string            `json:"toll_system,omitempty"`
	Status      string            `json:"status,omitempty"`
}

// Segment is one directional hop; (A,B) and (B,A) are different keys.
type Segment struct {
	From string
	To   string
}

// SegmentResult carries a nil Rate when the segment could not be priced.
type SegmentResult struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Rate *float64 `json:"rate"`
}

type CalculateCommand struct {
	Plazas       []string
	VehicleClass string
	DistanceKm   float64
}

type FareResult struct {
	TotalCost     float64         `json:"totalCost"`
	RoadCost      float64         `json:"roadCost"`
	TollCost      float64         `json:"tollCost"`
	Details       []SegmentResult `json:"details"`
	VehicleType   string          `json:"vehicleType"`
	VehicleClass  string          `json:"vehicleClass"`
	Distance      float64         `json:"distance"`
	RatePerKm     float64         `json:"ratePerKm"`
	EstimatedTime *string         `json:"estimatedTime"`
}
