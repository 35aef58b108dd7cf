package cli

import (
	"github.com/amankumarsingh77/yt-transcriber/internal/config"
	"github.com/amankumarsingh77/yt-transcriber/pkg/logger"
	"github.com/spf13/cobra"
)

type app struct {
	configFile string
	cfg        *config.Config
	logger     logger.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "transcriber",
		Short:         "Turn YouTube videos into transcripts, summaries and answers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "config.yml", "Path to the YAML config file")

	rootCmd.AddCommand(newServeCmd(a), newTranscribeCmd(a))
	return rootCmd
}

func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}
	v, err := config.LoadConfig(a.configFile)
	if err != nil {
		return err
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return err
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	a.cfg = cfg
	a.logger = appLogger
	return nil
}
