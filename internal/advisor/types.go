package advisor

// UserDetails is the investor profile posted to /api/recommend and
// /api/ml/predict. Optional fields are echoed back as null when absent.
type UserDetails struct {
	Age                  int      `json:"age" validate:"gte=18,lte=100"`
	InvestmentAmount     float64  `json:"investment_amount" validate:"gte=1000"`
	RiskPreference       string   `json:"risk_preference" validate:"required"`
	MonthlyIncome        *float64 `json:"monthly_income" validate:"omitempty,gte=0"`
	Savings              *float64 `json:"savings" validate:"omitempty,gte=0"`
	TimeHorizon          *string  `json:"time_horizon"`
	InvestmentExperience *string  `json:"investment_experience" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	FinancialGoals       *string  `json:"financial_goals"`
	MonthlyExpenses      *float64 `json:"monthly_expenses" validate:"omitempty,gte=0"`
}

// AllocationAmount is an Allocation applied to a concrete investment amount.
type AllocationAmount struct {
	AssetClass string  `json:"asset_class"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// Recommendation is the body of a served recommendation. Allocation keeps the
// asset class → percent object shape clients chart from; Breakdown adds the
// amounts for the user's investment.
type Recommendation struct {
	RiskLevel      string             `json:"risk_level"`
	ExpectedReturn string             `json:"expected_return"`
	Allocation     map[string]float64 `json:"allocation"`
	Breakdown      []AllocationAmount `json:"breakdown"`
	Features       []string           `json:"features"`
	Explanation    string             `json:"explanation"`
}

// RecommendResponse is the JSON body of POST /api/recommend.
type RecommendResponse struct {
	Status         string         `json:"status"`
	Recommendation Recommendation `json:"recommendation"`
	UserProfile    UserDetails    `json:"user_profile"`
}

// CompareResponse is the JSON body of GET /api/compare.
type CompareResponse struct {
	Status string `json:"status"`
	Plans  []Plan `json:"plans"`
}

// ReportResponse is the JSON body of GET /api/report/pdf.
type ReportResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	DownloadURL *string `json:"download_url"`
}

// PredictionResponse is the JSON body of POST /api/ml/predict.
type PredictionResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Prediction any    `json:"prediction"`
}
