package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/esports-predictor/internal/config"
)

// Client is the HTTP client for the model-serving service.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Logger
}

// NewClient creates a model service client from configuration.
func NewClient(cfg *config.ModelServiceConfig, logger *logrus.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		baseURL: cfg.URL,
		logger:  logger,
	}
}

// PredictRequest carries one feature vector, values aligned with the
// column names.
type PredictRequest struct {
	Columns  []string  `json:"columns"`
	Features []float64 `json:"features"`
}

// PredictResponse is the service's answer: the probability that the
// first team wins, plus the serving model version.
type PredictResponse struct {
	Team1WinProbability float64 `json:"team1_win_probability"`
	ModelVersion        string  `json:"model_version"`
}

// Predict requests a win probability for one feature vector.
func (c *Client) Predict(ctx context.Context, columns []string, features []float64) (*PredictResponse, error) {
	start := time.Now()

	if len(columns) != len(features) {
		return nil, fmt.Errorf("%w: %d columns for %d features", ErrInvalidResponse, len(columns), len(features))
	}

	jsonData, err := json.Marshal(PredictRequest{Columns: columns, Features: features})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("prediction request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var prediction PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if prediction.Team1WinProbability < 0 || prediction.Team1WinProbability > 1 {
		return nil, fmt.Errorf("%w: probability %f out of range", ErrInvalidResponse, prediction.Team1WinProbability)
	}

	c.logger.WithFields(logrus.Fields{
		"probability":   prediction.Team1WinProbability,
		"model_version": prediction.ModelVersion,
		"duration":      time.Since(start),
	}).Debug("Prediction served")

	return &prediction, nil
}

// HealthCheck checks model service health.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
