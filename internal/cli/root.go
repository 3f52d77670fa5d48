package cli

import (
	"StyleAdvisor/internal/config"
	"StyleAdvisor/pkg/log"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	envFile string
	port    string

	logger    *logrus.Logger
	appConfig *config.AppConfig
	validate  *validator.Validate
)

var rootCmd = &cobra.Command{
	Use:           "styleadvisor",
	Short:         "Photo based dress color advisor",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The logger reads LOG_LEVEL, LOG_DIR and APP_ENV once, so the
		// dotenv file has to be in the environment before it is built.
		envErr := godotenv.Load(envFile)
		logger = log.NewLogger()
		if envErr != nil {
			logger.Warnf("No %s file loaded, using process environment: %v", envFile, envErr)
		}

		cfg, err := config.LoadAppConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if port != "" {
			cfg.Port = port
		}

		validate = config.NewValidator()
		if err := cfg.Validate(validate); err != nil {
			return err
		}

		appConfig = cfg
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&port, "port", "", "HTTP port (overrides APP_PORT)")

	rootCmd.AddCommand(serveCmd, analyzeCmd)
}
