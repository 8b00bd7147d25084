// Package dash implements the interactive terminal dashboard: a per-product
// editable pricing grid with live rescoring, bar charts and CSV save. It is
// a host around the scoring engine; authentication is decided by the caller
// and passed in explicitly.
package dash

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/winbio/vendorscore/internal/score"
	"github.com/winbio/vendorscore/internal/table"
)

// viewMode selects the main panel.
type viewMode int

const (
	viewGrid viewMode = iota
	viewChart
)

// editField identifies which raw cell is being edited.
type editField int

const (
	editNone editField = iota
	editPrice
	editTerms
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	tbl    *table.Table
	engine score.Engine
	today  time.Time

	products   []string
	productIdx int

	grid  btable.Model
	mode  viewMode
	field editField
	input textinput.Model

	status string
	width  int
	height int

	styles Styles
}

// New creates the dashboard model. authorized is the host's login-gate
// decision; the dashboard itself never inspects ambient session state.
func New(t *table.Table, engine score.Engine, today time.Time, authorized bool) (*Model, error) {
	if !authorized {
		return nil, fmt.Errorf("not authorized")
	}
	products := t.Products()
	if len(products) == 0 {
		return nil, fmt.Errorf("dataset has no rows")
	}

	grid := btable.New(
		btable.WithColumns([]btable.Column{
			{Title: "Rank", Width: 7},
			{Title: "Vendor", Width: 14},
			{Title: "Price", Width: 10},
			{Title: "Terms", Width: 28},
			{Title: "Days", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Total Cost", Width: 12},
		}),
		btable.WithFocused(true),
		btable.WithHeight(12),
	)

	input := textinput.New()
	input.CharLimit = 60
	input.Width = 40

	m := &Model{
		tbl:      t,
		engine:   engine,
		today:    today,
		products: products,
		grid:     grid,
		input:    input,
		styles:   DefaultStyles(),
	}
	m.engine.Recompute(t.Rows(), today)
	m.refreshGrid()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.field != editNone {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// updateBrowsing handles keys while navigating the grid or chart.
func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "]":
		m.productIdx = (m.productIdx + 1) % len(m.products)
		m.refreshGrid()
		return m, nil

	case "shift+tab", "[":
		m.productIdx = (m.productIdx + len(m.products) - 1) % len(m.products)
		m.refreshGrid()
		return m, nil

	case "c":
		if m.mode == viewChart {
			m.mode = viewGrid
		} else {
			m.mode = viewChart
		}
		return m, nil

	case "p":
		return m.beginEdit(editPrice)

	case "t":
		return m.beginEdit(editTerms)

	case "s":
		if err := m.tbl.Save(""); err != nil {
			m.status = m.styles.Error.Render(err.Error())
		} else {
			m.status = fmt.Sprintf("saved %s", m.tbl.Path())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// updateEditing handles keys while a cell edit is in progress.
func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.field = editNone
		m.input.Blur()
		m.status = "edit cancelled"
		return m, nil

	case "enter":
		m.commitEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// beginEdit starts editing the selected row's price or terms cell.
func (m *Model) beginEdit(field editField) (tea.Model, tea.Cmd) {
	if m.mode != viewGrid {
		return m, nil
	}
	row := m.selectedRow()
	if row == nil {
		return m, nil
	}

	m.field = field
	if field == editPrice {
		m.input.Placeholder = "unit price"
		m.input.SetValue(row.PriceRaw)
	} else {
		m.input.Placeholder = "payment terms"
		m.input.SetValue(row.TermsRaw)
	}
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// commitEdit applies the pending edit and reruns the full recompute pass, so
// every derived column reflects the new cell before anything is displayed.
func (m *Model) commitEdit() {
	row := m.selectedRow()
	if row == nil {
		m.field = editNone
		m.input.Blur()
		return
	}

	var err error
	value := m.input.Value()
	switch m.field {
	case editPrice:
		err = m.tbl.SetPrice(row.Product, row.VendorCode, value)
	case editTerms:
		err = m.tbl.SetTerms(row.Product, row.VendorCode, value)
	}
	m.field = editNone
	m.input.Blur()

	if err != nil {
		m.status = m.styles.Error.Render(err.Error())
		return
	}

	m.engine.Recompute(m.tbl.Rows(), m.today)
	cursor := m.grid.Cursor()
	m.refreshGrid()
	m.grid.SetCursor(cursor)
	m.status = fmt.Sprintf("updated %s (unsaved)", row.VendorCode)
}

// product returns the currently selected product group.
func (m *Model) product() string {
	return m.products[m.productIdx]
}

// rows returns the current product's rows in input order, which keeps the
// grid cursor stable across rescoring.
func (m *Model) rows() []*score.VendorRow {
	return m.tbl.ByProduct(m.product())
}

// selectedRow maps the grid cursor back to a vendor row.
func (m *Model) selectedRow() *score.VendorRow {
	rows := m.rows()
	i := m.grid.Cursor()
	if i < 0 || i >= len(rows) {
		return nil
	}
	return rows[i]
}

// refreshGrid rebuilds the grid rows from the table.
func (m *Model) refreshGrid() {
	rows := m.rows()
	gridRows := make([]btable.Row, 0, len(rows))
	for _, r := range rows {
		gridRows = append(gridRows, btable.Row{
			formatRank(r),
			r.VendorCode,
			formatAmount(r.Price, 2),
			r.TermsRaw,
			formatDays(r.TermsDays),
			formatAmount(r.VendorScore, m.engine.Decimals),
			formatAmount(r.TotalCost, 2),
		})
	}
	m.grid.SetRows(gridRows)
	if m.grid.Cursor() >= len(gridRows) {
		m.grid.SetCursor(0)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Vendor Pricing, Terms & Score Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(fmt.Sprintf(
		"as of %s · qty %d · lower score = better",
		m.today.Format("2006-01-02"), m.engine.Quantity)))
	b.WriteString("\n\n")

	b.WriteString(m.productTabs())
	b.WriteString("\n\n")

	switch m.mode {
	case viewChart:
		b.WriteString(m.chartView())
	default:
		b.WriteString(m.grid.View())
		b.WriteString("\n")
		b.WriteString(m.bestLine())
	}
	b.WriteString("\n")

	if m.field != editNone {
		label := "price"
		if m.field == editTerms {
			label = "terms"
		}
		b.WriteString(m.styles.Prompt.Render(fmt.Sprintf("new %s: ", label)))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	dirty := ""
	if m.tbl.IsDirty() {
		dirty = " · unsaved edits"
	}
	b.WriteString(m.styles.Help.Render(
		"tab/[ ] product · ↑/↓ select · p edit price · t edit terms · c charts · s save · q quit" + dirty))
	b.WriteString("\n")

	return b.String()
}

// productTabs renders the product picker line.
func (m *Model) productTabs() string {
	parts := make([]string, 0, len(m.products))
	for i, p := range m.products {
		if i == m.productIdx {
			parts = append(parts, m.styles.Product.Render("["+p+"]"))
		} else {
			parts = append(parts, m.styles.Help.Render(" "+p+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// bestLine names the rank-1 vendor of the current group.
func (m *Model) bestLine() string {
	if best := m.tbl.Best(m.product()); best != nil {
		return m.styles.Best.Render(fmt.Sprintf("Best: %s %s (score %s)",
			best.RankBadge, best.VendorCode, formatAmount(best.VendorScore, m.engine.Decimals)))
	}
	return m.styles.Status.Render("Best: none (no vendor in this group has a defined score)")
}

// chartView renders price and score bar charts for the current group.
func (m *Model) chartView() string {
	rows := m.rows()

	var b strings.Builder
	b.WriteString(m.styles.Product.Render("Price comparison"))
	b.WriteString("\n")
	b.WriteString(m.bars(rows, func(r *score.VendorRow) score.Amount { return r.Price }))
	b.WriteString("\n")
	b.WriteString(m.styles.Product.Render("Score comparison (lower = better)"))
	b.WriteString("\n")
	b.WriteString(m.bars(rows, func(r *score.VendorRow) score.Amount { return r.VendorScore }))
	return b.String()
}

// bars renders one metric as horizontal bars scaled to the group maximum.
func (m *Model) bars(rows []*score.VendorRow, metric func(*score.VendorRow) score.Amount) string {
	const barWidth = 36

	labelWidth := 0
	max := 0.0
	for _, r := range rows {
		if len(r.VendorCode) > labelWidth {
			labelWidth = len(r.VendorCode)
		}
		if v := metric(r); v.Valid && v.Value > max {
			max = v.Value
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-*s  ", labelWidth, r.VendorCode))

		v := metric(r)
		if !v.Valid {
			b.WriteString(m.styles.BarAbsent.Render("—"))
			b.WriteString("\n")
			continue
		}

		filled := barWidth
		if max > 0 {
			filled = int(v.Value / max * barWidth)
		}
		if filled < 1 {
			filled = 1
		}

		style := m.styles.Bar
		if r.Rank == 1 {
			style = m.styles.BarBest
		}
		b.WriteString(style.Render(strings.Repeat("█", filled)))
		b.WriteString(" " + strconv.FormatFloat(v.Value, 'g', -1, 64))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRank(r *score.VendorRow) string {
	if r.Rank == 0 {
		return "—"
	}
	if r.RankBadge == "" {
		return strconv.Itoa(r.Rank)
	}
	return fmt.Sprintf("%d %s", r.Rank, r.RankBadge)
}

func formatAmount(a score.Amount, decimals int) string {
	if !a.Valid {
		return "—"
	}
	return strconv.FormatFloat(a.Value, 'f', decimals, 64)
}

func formatDays(td score.TermDays) string {
	if !td.Valid {
		return "—"
	}
	return strconv.Itoa(td.Days)
}
