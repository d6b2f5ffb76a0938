package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"investease-api/internal/sip"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
	colorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	gainStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	lossStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// RenderCalculation renders the summary card of one projection.
func RenderCalculation(c sip.Calculation) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SIP Projection"))
	b.WriteString("\n")

	rows := [][2]string{
		{"Monthly amount", FormatAmount(c.MonthlyAmount)},
		{"Expected return", FormatPercent(c.AnnualReturn)},
		{"Time period", FormatYears(c.TimePeriod)},
		{"Total invested", FormatAmount(c.TotalInvested)},
		{"Total returns", returnsStyle(c.TotalReturns).Render(FormatAmount(c.TotalReturns))},
		{"Future value", headerStyle.Render(FormatAmount(c.FutureValue))},
	}

	for _, row := range rows {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", row[0])), row[1])
	}

	return b.String()
}

// RenderSchedule renders a year-by-year table.
func RenderSchedule(s sip.Schedule) string {
	headers := []string{"Year", "Invested", "Value", "Returns"}
	withReal := s.Inflation != 0
	if withReal {
		headers = append(headers, "Real value")
	}

	rows := make([][]string, 0, len(s.Years))
	for _, p := range s.Years {
		row := []string{
			fmt.Sprintf("%d", p.Year),
			FormatAmount(p.Invested),
			FormatAmount(p.Value),
			FormatAmount(p.Returns),
		}
		if withReal && p.RealValue != nil {
			row = append(row, FormatAmount(*p.RealValue))
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SIP Schedule"))
	b.WriteString("\n")

	for i, h := range headers {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(fmt.Sprintf("%*s", widths[i], h)))
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			b.WriteString("  ")
			b.WriteString(fmt.Sprintf("%*s", widths[i], cell))
		}
		b.WriteString("\n")
	}

	if withReal {
		fmt.Fprintf(&b, "\n  %s\n", labelStyle.Render("Real value discounts "+FormatPercent(s.Inflation)+" annual inflation."))
	}

	return b.String()
}

func returnsStyle(v float64) lipgloss.Style {
	if v < 0 {
		return lossStyle
	}
	return gainStyle
}
