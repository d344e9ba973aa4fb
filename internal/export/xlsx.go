// Package export writes registration records to spreadsheet files.
//
// The output contract is fixed: full-campaign exports carry the columns
// Tienda, Estado, Premio and Fecha Registro; per-store exports drop Estado.
// Timestamps are rendered in the campaign's time zone, day/month/2-digit
// year with 12-hour time.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ruleta/internal/api"
	"ruleta/internal/log"
)

const sheetName = "Registros"

// Placeholders mirroring the dashboard rendering.
const (
	unknownStore = "Desconocida"
	noPrize      = "—"
	statusWinner = "GANADOR"
	statusLoser  = "NO GANÓ"
)

// Exporter writes spreadsheets for a single campaign.
type Exporter struct {
	campaign string
	loc      *time.Location
	dir      string
}

// NewExporter creates an Exporter. dir is where files are written; loc is
// the rendering time zone.
func NewExporter(campaign string, loc *time.Location, dir string) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{campaign: campaign, loc: loc, dir: dir}
}

// CampaignFilename is the deterministic name of the full export.
func (e *Exporter) CampaignFilename() string {
	return fmt.Sprintf("registros_%s_completo.xlsx", e.campaign)
}

// StoreFilename is the deterministic name of a per-store export.
func (e *Exporter) StoreFilename(storeName string) string {
	if storeName == "" {
		storeName = "Tienda"
	}
	// Keep the display name readable but path-safe.
	storeName = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, storeName)
	return fmt.Sprintf("registros_tienda_%s.xlsx", storeName)
}

// Campaign writes the full-campaign export and returns the file path.
func (e *Exporter) Campaign(records []api.RegistrationRecord) (string, error) {
	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, []any{"Tienda", "Estado", "Premio", "Fecha Registro"})
	for _, r := range records {
		rows = append(rows, []any{
			storeCell(r),
			status(r),
			prizeCell(r),
			e.FormatTime(r.CreatedAt),
		})
	}
	return e.write(e.CampaignFilename(), rows)
}

// Store writes a per-store export and returns the file path. storeName is
// only used for the file name; records are expected pre-filtered.
func (e *Exporter) Store(storeName string, records []api.RegistrationRecord) (string, error) {
	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, []any{"Tienda", "Premio", "Fecha Registro"})
	for _, r := range records {
		rows = append(rows, []any{
			storeCell(r),
			prizeCell(r),
			e.FormatTime(r.CreatedAt),
		})
	}
	return e.write(e.StoreFilename(storeName), rows)
}

// FormatTime renders a timestamp the way the dashboard does: es-PE short
// date with 12-hour time, in the exporter's time zone.
func (e *Exporter) FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	s := t.In(e.loc).Format("02/01/06, 3:04 pm")
	s = strings.ReplaceAll(s, "am", "a. m.")
	s = strings.ReplaceAll(s, "pm", "p. m.")
	return s
}

func (e *Exporter) write(filename string, rows [][]any) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("drop default sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	path := filepath.Join(e.dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	log.Info(log.CatExport, "Spreadsheet written", "path", path, "rows", len(rows)-1)
	return path, nil
}

func storeCell(r api.RegistrationRecord) string {
	if r.StoreName == "" {
		return unknownStore
	}
	return r.StoreName
}

func prizeCell(r api.RegistrationRecord) string {
	if r.PrizeName == "" {
		return noPrize
	}
	return r.PrizeName
}

func status(r api.RegistrationRecord) string {
	if r.Won() {
		return statusWinner
	}
	return statusLoser
}
