package cli

import (
	"StyleAdvisor/internal/api/analysis"
	analysisService "StyleAdvisor/internal/api/analysis/service"
	"StyleAdvisor/internal/config"
	contextPkg "StyleAdvisor/pkg/context"
	"StyleAdvisor/pkg/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var analyzeTimeout time.Duration

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a local photo and print the recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readImage(args[0], appConfig.MaxUploadBytes)
		if err != nil {
			return err
		}

		collaborators, err := config.NewCollaborators(appConfig, logger)
		if err != nil {
			return err
		}
		defer collaborators.Close()

		svc := analysisService.NewAnalysisService(logger, collaborators.Locator, collaborators.Landmarks, appConfig.MaxImagePixels)

		id, err := utils.New().NewULIDFromTimestamp(time.Now())
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(cmd.Context(), id), analyzeTimeout)
		defer cancel()

		result, err := svc.Analyze(ctx, data)
		if errors.Is(err, analysis.ErrNoFaceDetected) {
			return writeJSON(cmd.OutOrStdout(), analysis.ErrorResponse{Error: analysis.NoFaceMessage})
		}
		if err != nil {
			return err
		}

		return writeJSON(cmd.OutOrStdout(), analysis.NewAnalysisResponse(result))
	},
}

func init() {
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 30*time.Second, "maximum time for the analysis")
}

func readImage(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes, limit is %d", path, info.Size(), limit)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v interface{}) error {
	out, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
