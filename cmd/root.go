package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ruleta/internal/api"
	"ruleta/internal/app"
	"ruleta/internal/config"
	"ruleta/internal/export"
	"ruleta/internal/log"
	"ruleta/internal/mode"
	"ruleta/internal/registry"
	"ruleta/internal/store"
	"ruleta/internal/tracing"
	"ruleta/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	demoMode  bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ruleta [location]",
	Short: "Kiosko de ruleta de premios para campañas en tienda",
	Long: `Kiosko de terminal para campañas promocionales: los visitantes se
registran, giran la ruleta y descubren al instante si ganaron un premio.

El argumento opcional es la ubicación del kiosko. Una ruta que nombra una
tienda ("/105") fija esa tienda; también se acepta "?store=105". Cualquier
otra ruta abre la pantalla de inicio.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runKiosk,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/ruleta/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"enable debug logging to ruleta.log")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false,
		"run against an in-memory API with demo stores and prizes")
	rootCmd.PersistentFlags().String("api-url", "",
		"base URL of the campaign API")
	rootCmd.PersistentFlags().String("campaign", "",
		"campaign identifier sent with every registration")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("campaign", rootCmd.PersistentFlags().Lookup("campaign"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("api_url", defaults.APIURL)
	viper.SetDefault("campaign", defaults.Campaign)
	viper.SetDefault("timezone", defaults.Timezone)
	viper.SetDefault("export_dir", defaults.ExportDir)
	viper.SetDefault("ui.show_charts", defaults.UI.ShowCharts)
	viper.SetDefault("ui.show_footer", defaults.UI.ShowFooter)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	viper.SetEnvPrefix("RULETA")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .ruleta/config.yaml (current directory)
		// 2. ~/.config/ruleta/config.yaml (user config)
		if _, err := os.Stat(".ruleta/config.yaml"); err == nil {
			viper.SetConfigFile(".ruleta/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "ruleta"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .ruleta/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".ruleta/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// buildServices wires the shared dependencies for every subcommand.
// The returned shutdown func flushes tracing; call it on exit.
func buildServices() (mode.Services, func(), error) {
	if err := cfg.Validate(); err != nil {
		return mode.Services{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Highlight: cfg.Theme.Highlight,
		Subtle:    cfg.Theme.Subtle,
		Error:     cfg.Theme.Error,
		Success:   cfg.Theme.Success,
	}); err != nil {
		return mode.Services{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return mode.Services{}, nil, fmt.Errorf("initializing tracing: %w", err)
	}

	var svc api.Service
	if demoMode {
		svc = api.NewDemoClient(cfg.Campaign)
	} else {
		svc = api.NewClient(cfg.APIURL, cfg.Campaign, api.WithTracer(provider.Tracer()))
	}

	services := mode.Services{
		API:      svc,
		Config:   &cfg,
		Resolver: store.NewResolver(svc),
		Viewer:   registry.NewViewer(svc),
		Exporter: export.NewExporter(cfg.Campaign, cfg.Location(), cfg.ExportDir),
	}

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}
	return services, shutdown, nil
}

// initLogging enables file logging when --debug or RULETA_DEBUG is set.
func initLogging() func() {
	if !debugMode && os.Getenv("RULETA_DEBUG") == "" {
		return func() {}
	}
	cleanup, err := log.Init("ruleta.log")
	if err != nil {
		return func() {}
	}
	log.SetEnabled(true)
	log.SetMinLevel(log.LevelDebug)
	return cleanup
}

func runKiosk(cmd *cobra.Command, args []string) error {
	cleanup := initLogging()
	defer cleanup()

	services, shutdown, err := buildServices()
	if err != nil {
		return err
	}
	defer shutdown()

	location := ""
	if len(args) > 0 {
		location = args[0]
	}

	log.Info(log.CatConfig, "Starting kiosk", "campaign", cfg.Campaign, "location", location)

	model := app.New(services, location, mode.ModeLanding)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
