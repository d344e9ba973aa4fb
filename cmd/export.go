package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ruleta/internal/export"
	"ruleta/internal/log"
)

var (
	exportStore string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta los registros a una hoja de cálculo sin abrir la interfaz",
	Long: `Descarga los registros de la campaña y los escribe como .xlsx en el
directorio de exportación. Con --store exporta solo esa tienda.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportStore, "store", "", "id de la tienda a exportar")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "directorio de salida (default: export_dir)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cleanup := initLogging()
	defer cleanup()

	services, shutdown, err := buildServices()
	if err != nil {
		return err
	}
	defer shutdown()

	exporter := services.Exporter
	if exportOut != "" {
		exporter = export.NewExporter(cfg.Campaign, cfg.Location(), exportOut)
	}

	ctx := cmd.Context()

	records, err := services.Viewer.FetchAll(ctx, exportStore)
	if err != nil {
		return fmt.Errorf("fetching records: %w", err)
	}

	var path string
	if exportStore == "" {
		path, err = exporter.Campaign(records)
	} else {
		name := services.Resolver.Resolve(ctx, exportStore)
		if name == "" {
			name = exportStore
		}
		path, err = exporter.Store(name, records)
	}
	if err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}

	log.Info(log.CatExport, "Headless export finished", "path", path, "records", len(records))
	fmt.Fprintf(cmd.OutOrStdout(), "Exportado %d registros a %s\n", len(records), path)
	return nil
}
