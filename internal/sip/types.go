package sip

// Calculation is the presentation form of a projection returned by
// POST /api/sip/calc. Amounts are rounded; inputs are echoed back.
type Calculation struct {
	FutureValue   float64 `json:"future_value"`
	TotalInvested float64 `json:"total_invested"`
	TotalReturns  float64 `json:"total_returns"`
	MonthlyAmount float64 `json:"monthly_amount"`
	AnnualReturn  float64 `json:"annual_return"`
	TimePeriod    float64 `json:"time_period"`
}

// NewCalculation rounds res and pairs it with the inputs that produced it.
func NewCalculation(req Request, res Result) Calculation {
	r := res.Rounded()
	return Calculation{
		FutureValue:   r.FutureValue,
		TotalInvested: r.TotalInvested,
		TotalReturns:  r.TotalReturns,
		MonthlyAmount: req.MonthlyAmount,
		AnnualReturn:  req.ExpectedReturn,
		TimePeriod:    req.TimePeriod,
	}
}

// CalcResponse is the JSON body of POST /api/sip/calc.
type CalcResponse struct {
	Status      string      `json:"status"`
	Calculation Calculation `json:"calculation"`
}

// ScheduleRequest is the JSON body of POST /api/sip/projection.
type ScheduleRequest struct {
	Request
	Inflation float64 `json:"inflation"` // annual percent, 0 disables real values
}

// ScheduleResponse is the JSON body returned by POST /api/sip/projection.
type ScheduleResponse struct {
	Status     string   `json:"status"`
	Projection Schedule `json:"projection"`
}
