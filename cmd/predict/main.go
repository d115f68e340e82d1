// Package main provides the prediction CLI: query win probabilities for
// a matchup or list team rankings from the persisted model state.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/esports-predictor/internal/config"
	"github.com/yourusername/esports-predictor/internal/logger"
	"github.com/yourusername/esports-predictor/internal/metrics"
	"github.com/yourusername/esports-predictor/internal/ml"
	"github.com/yourusername/esports-predictor/internal/models"
	"github.com/yourusername/esports-predictor/internal/predict"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
	service    *predict.Service

	tierFlag      int
	prizepoolFlag float64
	typeFlag      string
	limitFlag     int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVar(&tierFlag, "tier", 0, "Tournament tier for context (0 for unknown)")
	rootCmd.Flags().Float64Var(&prizepoolFlag, "prizepool", 0, "Tournament prizepool for context")
	rootCmd.Flags().StringVar(&typeFlag, "type", "", "Tournament type: Online, Offline, Online/Offline")

	teamsCmd.Flags().IntVar(&limitFlag, "limit", 20, "Number of teams to list (0 for all)")
	rootCmd.AddCommand(teamsCmd)
}

var rootCmd = &cobra.Command{
	Use:   "predict TEAM1 TEAM2",
	Short: "Predict the outcome of an esports matchup",
	Long:  `Predicts the probability that TEAM1 beats TEAM2 using the persisted rating and statistics state and the model-serving service.`,
	Args:  cobra.ExactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		info := tournamentContext()
		prediction, err := service.Predict(cmd.Context(), args[0], args[1], info)
		if err != nil {
			return err
		}
		return printJSON(prediction)
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List teams ranked by rating",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(service.TeamRankings(limitFlag))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	appLogger = logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	elo, stats, err := predict.LoadState(cfg.Paths.EloState, cfg.Paths.TeamStatsState)
	if err != nil {
		return fmt.Errorf("failed to load model state (run build-features first): %w", err)
	}

	client := ml.NewClient(&cfg.ModelService, appLogger)
	cache := ml.NewPredictionCache(
		time.Duration(cfg.ModelService.CacheTTLSeconds)*time.Second,
		cfg.ModelService.CacheMaxSize,
	)
	service = predict.NewService(elo, stats, client, cache, appLogger)
	return nil
}

func tournamentContext() models.TournamentInfo {
	info := models.TournamentInfo{Type: typeFlag}
	if tierFlag > 0 {
		tier := tierFlag
		info.Tier = &tier
	}
	if prizepoolFlag > 0 {
		pool := decimal.NewFromFloat(prizepoolFlag)
		info.Prizepool = &pool
	}
	return info
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
