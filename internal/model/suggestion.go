package model

// RestockSuggestion is one advisory line returned by the assistant.
// The external service replies with loose JSON; every field here is required
// and responses missing any of them are rejected before reaching the UI.
type RestockSuggestion struct {
	ProductName         string `json:"productName" validate:"required"`
	Reason              string `json:"reason" validate:"required"`
	RecommendedQuantity int    `json:"recommendedQuantity" validate:"required,gt=0"`
}

// RestockAdvice is the envelope the assistant is asked to produce.
type RestockAdvice struct {
	Suggestions []RestockSuggestion `json:"suggestions"`
}
