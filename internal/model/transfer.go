package model

// ImportResult summarizes a successful bulk import.
type ImportResult struct {
	BatchID string   `json:"batchId"`
	Records int      `json:"records"`
	Cities  []string `json:"cities"`
}

// DeleteResult reports how many records were removed for a city.
type DeleteResult struct {
	City    string `json:"city"`
	Deleted int64  `json:"deleted"`
}
