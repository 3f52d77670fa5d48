package cli

import (
	"StyleAdvisor/internal/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		collaborators, err := config.NewCollaborators(appConfig, logger)
		if err != nil {
			return err
		}
		defer collaborators.Close()

		server, err := config.NewServer(
			config.WithFiber(config.NewFiber(appConfig)),
			config.WithLogger(logger),
			config.WithValidator(validate),
			config.WithAppConfig(appConfig),
			config.WithRedisServer(),
			config.WithMiddleware(),
			config.WithFaceLocator(collaborators.Locator),
			config.WithLandmarkExtractor(collaborators.Landmarks),
			config.WithUtils(),
		)
		if err != nil {
			return err
		}

		server.RegisterHandler()

		logger.Infof("Server starting on port %s", appConfig.Port)
		return server.Run(cmd.Context())
	},
}
