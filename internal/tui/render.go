package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/fraudlens/fraudlens/internal/idgen"
	"github.com/fraudlens/fraudlens/internal/simulator"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// transactionColumns lays out the live monitor table.
func transactionColumns() []table.Column {
	return []table.Column{
		{Title: "Hash", Width: 13},
		{Title: "From", Width: 13},
		{Title: "Amount", Width: 14},
		{Title: "Chain", Width: 9},
		{Title: "Risk", Width: 6},
		{Title: "Status", Width: 9},
	}
}

// transactionRows converts the feed into table rows, newest first.
func transactionRows(txs []simulator.Transaction) []table.Row {
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			idgen.Abbrev(tx.Hash, 8),
			idgen.Abbrev(tx.From, 8),
			tx.Amount + " " + tx.Currency,
			string(tx.Chain),
			fmt.Sprintf("%.1f", tx.RiskScore),
			string(tx.Status),
		})
	}
	return rows
}

func renderOverview(st Styles, o simulator.OverviewStats) string {
	stat := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			st.StatLabel.Render(label),
			st.StatValue.Render(value),
		)
	}
	cells := []string{
		stat("Total transactions", groupThousands(o.TotalTransactions)),
		stat("Flagged", groupThousands(o.FlaggedTransactions)),
		stat("Average risk", fmt.Sprintf("%.1f%%", o.AverageRiskScore)),
		stat("Active contracts", groupThousands(o.ActiveContracts)),
	}
	for i := range cells {
		cells[i] = lipgloss.NewStyle().Width(22).Render(cells[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderAlerts(st Styles, alerts []simulator.Alert, limit int) string {
	var b strings.Builder
	b.WriteString(st.PanelHead.Render("Fraud alerts"))
	b.WriteString("\n")

	shown := 0
	for _, a := range alerts {
		if a.Dismissed {
			continue
		}
		if shown == limit {
			break
		}
		sev := st.ForSeverity(a.Severity).Render(strings.ToUpper(string(a.Severity)))
		fmt.Fprintf(&b, "%s %s\n", sev, a.Title)
		fmt.Fprintf(&b, "  %s\n", st.Muted.Render(idgen.Abbrev(a.TxHash, 8)+" · "+a.AutoAction))
		shown++
	}
	if shown == 0 {
		b.WriteString(st.Muted.Render("No active alerts"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// sparkline scales each value between lo and hi onto eight block heights.
func sparkline(values []float64, lo, hi float64) string {
	if hi <= lo {
		return ""
	}
	out := make([]rune, len(values))
	last := len(sparkBlocks) - 1
	for i, v := range values {
		idx := int((v - lo) / (hi - lo) * float64(last))
		if idx < 0 {
			idx = 0
		}
		if idx > last {
			idx = last
		}
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

func renderRisk(st Styles, r simulator.RiskSnapshot) string {
	values := make([]float64, len(r.Points))
	for i, p := range r.Points {
		values[i] = p.Value
	}

	var first, last string
	if len(r.Points) > 0 {
		first = r.Points[0].Label
		last = r.Points[len(r.Points)-1].Label
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		st.PanelHead.Render("Risk score, last 24 hours"),
		st.Info.Render(sparkline(values, simulator.RiskMin, simulator.RiskMax)),
		st.Muted.Render(fmt.Sprintf("%s%*s", first, len(values)-len(first), last)),
		fmt.Sprintf("avg %.1f%%  max %.1f%%  high-risk hours %d", r.Average, r.Max, r.HighRiskCount),
	)
}

func renderModels(st Styles, m simulator.ModelSnapshot) string {
	lines := []string{
		st.PanelHead.Render("Model performance"),
		fmt.Sprintf("Accuracy        %5.1f%%", m.Accuracy),
		fmt.Sprintf("Precision       %5.1f%%", m.Precision),
		fmt.Sprintf("Recall          %5.1f%%", m.Recall),
		fmt.Sprintf("F1 score        %5.1f%%", m.F1Score),
		fmt.Sprintf("False positives %5.1f%%", m.FalsePositiveRate),
		fmt.Sprintf("Processing      %5.1f ms", m.ProcessingTimeMs),
	}
	for _, md := range m.Models {
		status := st.Success.Render(md.Status)
		if md.Status != "online" {
			status = st.Warning.Render(md.Status)
		}
		lines = append(lines, fmt.Sprintf("%-20s %s", md.Name, status))
	}
	return strings.Join(lines, "\n")
}

func renderChains(st Styles, c simulator.ChainSnapshot) string {
	lines := []string{st.PanelHead.Render("Blockchain status")}
	for _, ch := range c.Chains {
		gas := fmt.Sprintf("%.1f %s", ch.GasPrice, ch.GasUnit)
		if ch.GasPrice < 1 {
			gas = fmt.Sprintf("%.4f %s", ch.GasPrice, ch.GasUnit)
		}
		lines = append(lines, fmt.Sprintf("%-9s %s  %4.0f ms  block %s  gas %s",
			ch.Chain,
			st.Success.Render(ch.Status),
			ch.LatencyMs,
			groupThousands(int64(ch.BlockHeight)),
			gas,
		))
	}
	if len(c.Protocols) > 0 {
		lines = append(lines, "")
		for _, p := range c.Protocols {
			lines = append(lines, fmt.Sprintf("%-12s %-8s TVL %-6s risk %s", p.Name, p.Chain, p.TVL, p.RiskLevel))
		}
	}
	return strings.Join(lines, "\n")
}

// groupThousands formats n with comma separators.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
