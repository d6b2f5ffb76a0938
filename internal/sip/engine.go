package sip

import (
	"math"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks every rejected projection input.
var ErrInvalidInput = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		return isFinite(fl.Field().Float())
	})

	return v
}

// Request holds the inputs of a single projection. ExpectedReturn is an annual
// percentage; below -1200 the monthly growth factor 1+r turns negative.
type Request struct {
	MonthlyAmount  float64 `json:"monthly_amount" validate:"finite,gt=0"`
	ExpectedReturn float64 `json:"expected_return" validate:"finite,gte=-1200"`
	TimePeriod     float64 `json:"time_period" validate:"finite,gt=0"`
}

// Result is the outcome of a projection.
type Result struct {
	FutureValue   float64 `json:"future_value"`
	TotalInvested float64 `json:"total_invested"`
	TotalReturns  float64 `json:"total_returns"`
}

// Rounded returns r with every amount rounded to 2 decimal places.
func (r Result) Rounded() Result {
	return Result{
		FutureValue:   round2(r.FutureValue),
		TotalInvested: round2(r.TotalInvested),
		TotalReturns:  round2(r.TotalReturns),
	}
}

// Validate reports whether req can be projected. The returned error is
// marked with ErrInvalidInput.
func (req Request) Validate() error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Mark(errors.Wrap(err, "invalid input"), ErrInvalidInput)
	}

	return invalidInput(describe(fieldErrs[0]))
}

// Project computes the annuity-due future value of a monthly contribution.
// Amounts are returned at full precision; use Result.Rounded for display.
func Project(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	res := project(req.MonthlyAmount, req.ExpectedReturn, req.TimePeriod)

	if !res.finite() {
		return Result{}, invalidInput("projection overflows for the given inputs")
	}

	return res, nil
}

func (r Result) finite() bool {
	return isFinite(r.FutureValue) && isFinite(r.TotalInvested) && isFinite(r.TotalReturns)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func project(amount, annualReturn, years float64) Result {
	r := annualReturn / 12 / 100
	n := years * 12

	invested := amount * n

	var fv float64
	if r == 0 {
		fv = invested
	} else {
		fv = amount * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
	}

	return Result{
		FutureValue:   fv,
		TotalInvested: invested,
		TotalReturns:  fv - invested,
	}
}

// IsInvalidInput reports whether err was caused by rejected input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func invalidInput(msg string) error {
	return errors.Mark(errors.Newf("invalid input: %s", errors.Safe(msg)), ErrInvalidInput)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "finite":
		return fe.Field() + " must be a finite number"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
