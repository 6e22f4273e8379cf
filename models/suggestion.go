package models

// DemandPoint is one historical demand observation for a product.
type DemandPoint struct {
	Date     string `json:"date" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// SuggestionInput is the structured request for the reorder quantity
// suggestion flow. It must validate before the generative call is made.
type SuggestionInput struct {
	ProductId        string        `json:"productId" validate:"required"`
	ProductName      string        `json:"productName" validate:"required"`
	CurrentStock     int           `json:"currentStock" validate:"gte=0"`
	ReorderPoint     int           `json:"reorderPoint" validate:"gte=0"`
	HistoricalDemand []DemandPoint `json:"historicalDemand" validate:"required,min=1,dive"`
	LeadTimeDays     int           `json:"leadTimeDays" validate:"gt=0"`
	Seasonality      string        `json:"seasonality,omitempty"`
}

// SuggestionResult is the schema the generative collaborator must conform
// to. Anything else is treated as a failed call, never a partial result.
type SuggestionResult struct {
	SuggestedQuantity int    `json:"suggestedQuantity" validate:"gt=0"`
	Reasoning         string `json:"reasoning" validate:"required"`
}
