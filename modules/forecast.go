package modules

import (
	docstate "github.com/goliatone/go-docstate"
)

// ForecastRow is one month of the financial forecast.
type ForecastRow struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
	COGS    float64 `json:"cogs"`
	OpEx    float64 `json:"opex"`
}

// Forecast is the financial-forecast document: global assumptions plus one
// row per month.
type Forecast struct {
	Currency     string        `json:"currency"`
	StartingCash float64       `json:"startingCash"`
	Rows         []ForecastRow `json:"rows"`
}

// DefaultForecast returns an empty forecast in USD.
func DefaultForecast() Forecast {
	return Forecast{Currency: "USD", Rows: []ForecastRow{}}
}

var forecastRules = []docstate.Rule{
	{Field: "currency", Expr: `call("matches", currency, "^[A-Z]{3}$")`, Message: "currency must be a three-letter code"},
	{Field: "rows", Expr: `all(rows, {.revenue >= 0 and .cogs >= 0 and .opex >= 0})`, Message: "amounts must not be negative"},
	{Field: "rows", Expr: `all(rows, {call("matches", .month, "^\\d{4}-\\d{2}$")})`, Message: "months must use the YYYY-MM format"},
	{Field: "rows", Expr: `len(rows) <= 120`, Message: "forecasts are capped at ten years of rows"},
}

// ForecastSchema validates the forecast with constraint rules over the
// decoded document.
func ForecastSchema() docstate.Schema[Forecast] {
	return docstate.NewRuleSchema(
		docstate.NewStructSchema[Forecast](
			docstate.StructRequired[Forecast]("currency"),
		),
		forecastRules,
		docstate.RuleWithFunctionRegistry[Forecast](docstate.DefaultFunctionRegistry()),
		docstate.RuleWithKey[Forecast](KeyForecast),
	)
}
