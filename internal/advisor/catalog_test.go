package advisor

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	require.Len(t, c.Profiles, 3)
	require.Len(t, c.Plans, 3)

	low, err := c.Profile("Low")
	require.NoError(t, err)
	assert.Equal(t, "8-10%", low.ExpectedReturn)
	assert.Equal(t, []Allocation{
		{AssetClass: "Fixed Deposits", Percentage: 40},
		{AssetClass: "Government Bonds", Percentage: 30},
		{AssetClass: "Debt Funds", Percentage: 20},
		{AssetClass: "Gold ETF", Percentage: 10},
	}, low.Allocation)
	assert.Contains(t, low.Explanation, "capital preservation")
	assert.NotContains(t, low.Explanation, "\n")

	assert.Equal(t, Plan{
		Name:           "Balanced Growth Plan",
		Risk:           "Medium",
		ExpectedReturn: "10-12%",
		MinInvestment:  1000,
		LockIn:         "3 years",
		TaxBenefit:     true,
	}, c.Plans[1])
}

func TestCatalogUnknownRisk(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	_, err = c.Profile("Extreme")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRiskPreference))
}

func TestParseCatalogRejectsInconsistentDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{
			name: "allocation does not add up",
			doc: `
[[profiles]]
risk = "Low"
  [[profiles.allocation]]
  asset_class = "FD"
  percentage = 90
`,
			msg: "sums to 90%",
		},
		{
			name: "duplicate risk",
			doc: `
[[profiles]]
risk = "Low"
  [[profiles.allocation]]
  asset_class = "FD"
  percentage = 100
[[profiles]]
risk = "Low"
  [[profiles.allocation]]
  asset_class = "FD"
  percentage = 100
`,
			msg: "duplicate",
		},
		{
			name: "plan with unknown risk",
			doc: `
[[plans]]
name = "Moonshot"
risk = "Extreme"
`,
			msg: "unknown risk",
		},
		{
			name: "unknown key",
			doc: `
[[plans]]
nmae = "typo"
`,
			msg: "unknown key",
		},
		{
			name: "malformed",
			doc:  `[[profiles`,
			msg:  "decoding catalog",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog(tc.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}
