// Package advisor serves the static investment recommendations and plan
// comparison of the API.
package advisor

import (
	_ "embed"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

//go:embed catalog.toml
var defaultCatalog string

// ErrUnknownRiskPreference is returned for a risk preference with no profile.
var ErrUnknownRiskPreference = errors.New("invalid risk preference")

// Allocation is one asset class of a profile, in percent of the investment.
type Allocation struct {
	AssetClass string  `toml:"asset_class" json:"asset_class"`
	Percentage float64 `toml:"percentage" json:"percentage"`
}

// Profile is the recommendation for one risk preference.
type Profile struct {
	Risk           string       `toml:"risk"`
	ExpectedReturn string       `toml:"expected_return"`
	Allocation     []Allocation `toml:"allocation"`
	Features       []string     `toml:"features"`
	Explanation    string       `toml:"explanation"`
}

// Plan is a row of the plan comparison table.
type Plan struct {
	Name           string  `toml:"name" json:"name"`
	Risk           string  `toml:"risk" json:"risk"`
	ExpectedReturn string  `toml:"expected_return" json:"expected_return"`
	MinInvestment  float64 `toml:"min_investment" json:"min_investment"`
	LockIn         string  `toml:"lock_in" json:"lock_in"`
	TaxBenefit     bool    `toml:"tax_benefit" json:"tax_benefit"`
}

// Catalog holds every profile and plan the advisor can serve.
type Catalog struct {
	Profiles []Profile `toml:"profiles"`
	Plans    []Plan    `toml:"plans"`

	byRisk map[string]Profile
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a TOML catalog and checks that it is consistent.
func ParseCatalog(doc string) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(doc, &c)
	if err != nil {
		return nil, errors.Wrap(err, "decoding catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("catalog has unknown key %q", undecoded[0].String())
	}

	c.byRisk = make(map[string]Profile, len(c.Profiles))
	for _, p := range c.Profiles {
		if p.Risk == "" {
			return nil, errors.New("catalog profile without risk")
		}
		if _, dup := c.byRisk[p.Risk]; dup {
			return nil, errors.Newf("duplicate catalog profile %q", p.Risk)
		}

		var total float64
		for _, a := range p.Allocation {
			total += a.Percentage
		}
		if math.Abs(total-100) > 1e-9 {
			return nil, errors.Newf("profile %q allocation sums to %g%%, want 100%%", p.Risk, total)
		}

		c.byRisk[p.Risk] = p
	}

	for _, plan := range c.Plans {
		if _, ok := c.byRisk[plan.Risk]; !ok {
			return nil, errors.Newf("plan %q references unknown risk %q", plan.Name, plan.Risk)
		}
	}

	return &c, nil
}

// Profile returns the profile for risk.
func (c *Catalog) Profile(risk string) (Profile, error) {
	p, ok := c.byRisk[risk]
	if !ok {
		return Profile{}, errors.Wrapf(ErrUnknownRiskPreference, "risk preference %q", risk)
	}
	return p, nil
}
