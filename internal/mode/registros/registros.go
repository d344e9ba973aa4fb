// Package registros implements the records dashboard: filterable table,
// per-store charts and spreadsheet export.
package registros

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ruleta/internal/api"
	"ruleta/internal/keys"
	"ruleta/internal/log"
	"ruleta/internal/mode"
	"ruleta/internal/registry"
	"ruleta/internal/ui/styles"
	"ruleta/internal/ui/toaster"
)

const (
	fetchTimeout = 15 * time.Second
	maxTableRows = 15
)

// storesMsg carries the store list for the filter.
type storesMsg struct {
	stores []api.Store
	err    error
}

// recordsMsg carries a finished registry fetch.
type recordsMsg struct {
	result registry.Result
}

// exportDoneMsg carries the outcome of a spreadsheet export.
type exportDoneMsg struct {
	path string
	err  error
}

// Model holds the dashboard state.
type Model struct {
	services mode.Services

	stores  []api.Store
	filter  int // 0 = all stores, 1..n = stores[n-1]
	records []api.RegistrationRecord

	loading   bool
	err       error
	exporting bool
	alert     string // blocking export-failure alert

	width  int
	height int
}

// New creates the dashboard.
func New(services mode.Services) Model {
	return Model{services: services, loading: true}
}

// Init fetches the store filter options and the unfiltered record list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStoresCmd(), m.loadRecordsCmd())
}

func (m Model) loadStoresCmd() tea.Cmd {
	svc := m.services.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		stores, err := svc.ListStores(ctx, 1, 100)
		return storesMsg{stores: stores, err: err}
	}
}

// loadRecordsCmd starts a registry fetch for the current filter. The viewer
// cancels any fetch still in flight, so rapid filter changes cannot race.
func (m Model) loadRecordsCmd() tea.Cmd {
	run := m.services.Viewer.List(m.filterStoreID())
	return func() tea.Msg {
		return recordsMsg{result: run()}
	}
}

// filterStoreID maps the filter cursor to a store id. Empty means all.
func (m Model) filterStoreID() string {
	if m.filter == 0 || m.filter > len(m.stores) {
		return ""
	}
	return m.stores[m.filter-1].ID
}

// filterStoreName returns the display name of the active filter.
func (m Model) filterStoreName() string {
	if m.filter == 0 || m.filter > len(m.stores) {
		return "Todas las tiendas"
	}
	return m.stores[m.filter-1].Name
}

// Records returns the currently displayed records.
func (m Model) Records() []api.RegistrationRecord {
	return m.records
}

// Loading reports whether a record fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// AlertOpen reports whether the export-failure alert is showing.
func (m Model) AlertOpen() bool {
	return m.alert != ""
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case storesMsg:
		if msg.err != nil {
			// Filter degrades to all-stores; records still load.
			log.ErrorErr(log.CatRegistry, "Store filter load failed", msg.err)
			return m, nil
		}
		m.stores = msg.stores
		return m, nil

	case recordsMsg:
		if msg.result.Superseded || !m.services.Viewer.Current(msg.result.Generation) {
			return m, nil
		}
		m.loading = false
		m.err = msg.result.Err
		if msg.result.Err == nil {
			m.records = msg.result.Records
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			log.ErrorErr(log.CatExport, "Export failed", msg.err)
			m.alert = "La exportación falló: " + msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return mode.ShowToastMsg{
				Message: "Exportado: " + msg.path,
				Style:   toaster.StyleSuccess,
			}
		}

	case tea.KeyMsg:
		// The failure alert blocks everything until acknowledged.
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Default.Back):
			return m, func() tea.Msg { return mode.GoToLandingMsg{} }

		case key.Matches(msg, keys.Default.Left):
			if m.filter > 0 {
				m.filter--
				m.loading = true
				return m, m.loadRecordsCmd()
			}
			return m, nil

		case key.Matches(msg, keys.Default.Right):
			if m.filter < len(m.stores) {
				m.filter++
				m.loading = true
				return m, m.loadRecordsCmd()
			}
			return m, nil

		case key.Matches(msg, keys.Default.Reload):
			m.loading = true
			return m, tea.Batch(m.loadStoresCmd(), m.loadRecordsCmd())

		case key.Matches(msg, keys.Default.Export):
			return m.export()
		}
	}
	return m, nil
}

// export writes the current filter's records to a spreadsheet.
func (m Model) export() (mode.Controller, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	m.exporting = true

	storeID := m.filterStoreID()
	storeName := m.filterStoreName()
	viewer := m.services.Viewer
	exporter := m.services.Exporter

	log.Info(log.CatExport, "Export requested", "store", storeID)

	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		records, err := viewer.FetchAll(ctx, storeID)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		var path string
		if storeID == "" {
			path, err = exporter.Campaign(records)
		} else {
			path, err = exporter.Store(storeName, records)
		}
		return exportDoneMsg{path: path, err: err}
	}
}

// View renders the dashboard.
func (m Model) View() string {
	title := styles.TitleStyle.Render("Registros de la campaña")

	filterLabel := fmt.Sprintf("◂ %s ▸", m.filterStoreName())
	filter := styles.RenderFormSection([]string{" " + filterLabel}, "Tienda", "←/→ cambiar", 40, true, styles.AccentColor)

	var body string
	switch {
	case m.loading:
		body = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("Cargando registros...")
	case m.err != nil && len(m.records) == 0:
		body = lipgloss.NewStyle().Foreground(styles.StatusErrorColor).
			Render("No se pudieron cargar los registros. Presiona r para reintentar.")
	case len(m.records) == 0:
		body = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("No se encontraron registros.")
	default:
		body = m.renderTable()
		// A failed refetch keeps the last rows on screen.
		if m.err != nil {
			body += "\n\n" + lipgloss.NewStyle().Foreground(styles.StatusErrorColor).
				Render("No se pudo actualizar la lista. Presiona r para reintentar.")
		}
		if m.services.Config.UI.ShowCharts {
			body += "\n\n" + m.renderCharts()
		}
	}

	sections := []string{title, "", filter, "", body}

	if m.services.Config.UI.ShowFooter && !m.loading && len(m.records) > 0 {
		sections = append(sections, "",
			styles.FooterStyle.Render(fmt.Sprintf("Mostrando %d últimos registros", len(m.records))))
	}
	sections = append(sections, "",
		styles.FooterStyle.Render("←/→ tienda · e exportar · r recargar · esc volver"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.alert != "" {
		alertBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.StatusErrorColor).
			Padding(0, 2).
			Render(m.alert + "\n\n" + styles.FooterStyle.Render("presiona cualquier tecla"))
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", alertBox)
	}

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderTable draws the most recent records.
func (m Model) renderTable() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor)
	winStyle := lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	loseStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	cellStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)

	rows := []string{
		headerStyle.Render(fmt.Sprintf("%-20s %-10s %-18s %s", "Tienda", "Estado", "Premio", "Fecha Registro")),
	}

	count := min(len(m.records), maxTableRows)
	for _, r := range m.records[:count] {
		name := r.StoreName
		if name == "" {
			name = "Desconocida"
		}
		estado := loseStyle.Render(fmt.Sprintf("%-10s", "NO GANÓ"))
		if r.Won() {
			estado = winStyle.Render(fmt.Sprintf("%-10s", "GANADOR"))
		}
		premio := r.PrizeName
		if premio == "" {
			premio = "—"
		}
		rows = append(rows, fmt.Sprintf("%s %s %s %s",
			cellStyle.Render(fmt.Sprintf("%-20s", truncate(name, 20))),
			estado,
			cellStyle.Render(fmt.Sprintf("%-18s", truncate(premio, 18))),
			styles.FooterStyle.Render(m.services.Exporter.FormatTime(r.CreatedAt)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCharts draws per-store registration bars and the win rate.
func (m Model) renderCharts() string {
	counts := make(map[string]int)
	order := make([]string, 0)
	wins := 0
	for _, r := range m.records {
		name := r.StoreName
		if name == "" {
			name = "Desconocida"
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
		if r.Won() {
			wins++
		}
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(styles.AccentColor)
	rows := []string{lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor).Render("Registros por tienda")}
	for _, name := range order {
		c := counts[name]
		barLen := 1
		if maxCount > 0 {
			barLen = max(c*20/maxCount, 1)
		}
		rows = append(rows, fmt.Sprintf("%-20s %s %d",
			truncate(name, 20), barStyle.Render(strings.Repeat("█", barLen)), c))
	}

	rate := 0
	if len(m.records) > 0 {
		rate = wins * 100 / len(m.records)
	}
	rateBar := strings.Repeat("█", rate/5)
	rows = append(rows, "", fmt.Sprintf("Tasa de premios %s %d%%",
		lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Render(rateBar), rate))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

var _ mode.Controller = Model{}
