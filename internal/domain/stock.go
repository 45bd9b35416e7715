package domain

// StockQuote is a point-in-time snapshot of the bank's share price as shown
// on the investor relations page.
type StockQuote struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangePercent     float64 `json:"change_percent"`
	Volume            string  `json:"volume"`
	DayRange          string  `json:"day_range"`
	FiftyTwoWeekRange string  `json:"fifty_two_week_range"`
	LastUpdate        string  `json:"last_update"`
	Source            string  `json:"source"`
}
