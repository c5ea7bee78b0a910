package models

// Stats summarizes the whole store for the admin dashboard. Counts are
// estimated document counts, not exact.
type Stats struct {
	Customers int64   `json:"customers"`
	Products  int64   `json:"products"`
	Orders    int64   `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// CategoryStat is one row of the per-category order breakdown.
type CategoryStat struct {
	Category string  `bson:"category" json:"category"`
	Quantity int64   `bson:"quantity" json:"quantity"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
}
