package advisor

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidProfile wraps every UserDetails validation failure.
var ErrInvalidProfile = errors.New("invalid user profile")

// Advisor answers recommendation queries from a Catalog.
type Advisor struct {
	catalog  *Catalog
	validate *validator.Validate
}

func New(catalog *Catalog) *Advisor {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})

	return &Advisor{catalog: catalog, validate: v}
}

// Validate checks u against the profile constraints.
func (a *Advisor) Validate(u UserDetails) error {
	err := a.validate.Struct(u)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errors.Mark(errors.Newf("%s", errors.Safe(describe(fieldErrs[0]))), ErrInvalidProfile)
	}
	return errors.Mark(err, ErrInvalidProfile)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "lte":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fe.Field() + " is invalid"
	}
}

// Recommend returns the catalog recommendation for u's risk preference with
// allocation amounts for its investment. An unknown preference is reported
// as ErrUnknownRiskPreference before the rest of the profile is validated.
func (a *Advisor) Recommend(u UserDetails) (Recommendation, error) {
	p, err := a.catalog.Profile(u.RiskPreference)
	if err != nil {
		return Recommendation{}, err
	}

	if err := a.Validate(u); err != nil {
		return Recommendation{}, err
	}

	amount := decimal.NewFromFloat(u.InvestmentAmount)
	hundred := decimal.NewFromInt(100)

	alloc := make(map[string]float64, len(p.Allocation))
	breakdown := make([]AllocationAmount, 0, len(p.Allocation))
	for _, al := range p.Allocation {
		alloc[al.AssetClass] = al.Percentage

		share := amount.Mul(decimal.NewFromFloat(al.Percentage)).Div(hundred).Round(2)
		breakdown = append(breakdown, AllocationAmount{
			AssetClass: al.AssetClass,
			Percentage: al.Percentage,
			Amount:     share.InexactFloat64(),
		})
	}

	return Recommendation{
		RiskLevel:      p.Risk,
		ExpectedReturn: p.ExpectedReturn,
		Allocation:     alloc,
		Breakdown:      breakdown,
		Features:       append([]string(nil), p.Features...),
		Explanation:    p.Explanation,
	}, nil
}

// Plans returns the comparison plans in catalog order.
func (a *Advisor) Plans() []Plan {
	return append([]Plan(nil), a.catalog.Plans...)
}
