package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ruleta/internal/app"
	"ruleta/internal/log"
	"ruleta/internal/mode"
)

var registrosCmd = &cobra.Command{
	Use:   "registros",
	Short: "Abre el panel de registros de la campaña",
	Long: `Panel interactivo con los últimos registros de la campaña: filtro por
tienda, gráficos de participación y exportación a hoja de cálculo.`,
	RunE: runRegistros,
}

func init() {
	rootCmd.AddCommand(registrosCmd)
}

func runRegistros(cmd *cobra.Command, args []string) error {
	cleanup := initLogging()
	defer cleanup()

	services, shutdown, err := buildServices()
	if err != nil {
		return err
	}
	defer shutdown()

	log.Info(log.CatRegistry, "Starting records dashboard", "campaign", cfg.Campaign)

	model := app.New(services, "", mode.ModeRegistros)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
