package sip

import "math"

// MaxScheduleYears bounds the number of points ProjectSchedule produces.
const MaxScheduleYears = 100

// YearPoint is the state of a plan at the end of one year.
type YearPoint struct {
	Year      int      `json:"year"`
	Invested  float64  `json:"invested"`
	Value     float64  `json:"value"`
	Returns   float64  `json:"returns"`
	RealValue *float64 `json:"real_value,omitempty"`
}

// Schedule is a year-by-year projection ending at the requested horizon.
type Schedule struct {
	Years     []YearPoint `json:"years"`
	Final     Result      `json:"final"`
	Inflation float64     `json:"inflation"`
}

// ProjectSchedule projects req at every whole year up to req.TimePeriod. A
// fractional horizon adds a final point at the exact period, labelled with
// the next whole year. A non-zero inflation (annual percent) fills
// RealValue on every point. Values in the schedule are rounded.
func ProjectSchedule(req Request, inflation float64) (Schedule, error) {
	final, err := Project(req)
	if err != nil {
		return Schedule{}, err
	}

	if !isFinite(inflation) || inflation <= -100 {
		return Schedule{}, invalidInput("inflation must be a finite number greater than -100")
	}

	if req.TimePeriod > MaxScheduleYears {
		return Schedule{}, invalidInput("time_period must be at most 100 years for a schedule")
	}

	years := int(math.Ceil(req.TimePeriod))
	points := make([]YearPoint, 0, years)

	for year := 1; year <= years; year++ {
		horizon := float64(year)
		if horizon > req.TimePeriod {
			horizon = req.TimePeriod
		}

		res := project(req.MonthlyAmount, req.ExpectedReturn, horizon)
		if !res.finite() {
			return Schedule{}, invalidInput("projection overflows for the given inputs")
		}

		rounded := res.Rounded()
		point := YearPoint{
			Year:     year,
			Invested: rounded.TotalInvested,
			Value:    rounded.FutureValue,
			Returns:  rounded.TotalReturns,
		}

		if inflation != 0 {
			rv := InflationAdjusted(res.FutureValue, inflation, horizon)
			if !isFinite(rv) {
				return Schedule{}, invalidInput("inflation-adjusted value overflows for the given inputs")
			}
			rv = round2(rv)
			point.RealValue = &rv
		}

		points = append(points, point)
	}

	return Schedule{
		Years:     points,
		Final:     final.Rounded(),
		Inflation: inflation,
	}, nil
}

// InflationAdjusted discounts amount by inflationPct percent a year over years.
func InflationAdjusted(amount, inflationPct, years float64) float64 {
	return amount / math.Pow(1+inflationPct/100, years)
}
