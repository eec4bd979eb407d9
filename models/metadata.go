package models

// Metadata is stamped next to a generated dataset.
type Metadata struct {
	RunID            string         `json:"run_id"`
	Seed             uint64         `json:"seed"`
	NCustomers       int            `json:"n_customers"`
	NProducts        int            `json:"n_products"`
	NOrders          int            `json:"n_orders"`
	MinItemsPerOrder int            `json:"min_items_per_order"`
	MaxItemsPerOrder int            `json:"max_items_per_order"`
	PriceMean        float64        `json:"price_mean"`
	PriceSigma       float64        `json:"price_sigma"`
	HistoryDays      int            `json:"history_days"`
	ReferenceDate    Date           `json:"reference_date"`
	GeneratedAt      string         `json:"generated_at"`
	RowsWritten      map[string]int `json:"rows_written"`
	FailedOrders     int            `json:"failed_orders"`
}
