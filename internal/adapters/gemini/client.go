// Package gemini adapts the Google generative language API for scene code
// synthesis.
package gemini

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"github.com/scenesmith/scenesmith/config"
	"github.com/scenesmith/scenesmith/internal/core"
	apperrors "github.com/scenesmith/scenesmith/internal/errors"
)

// credentialsScope is the OAuth scope requested for service account keys.
const credentialsScope = "https://www.googleapis.com/auth/cloud-platform"

// Client calls the generative language API to synthesize scene code.
type Client struct {
	svc     *generativelanguage.Service
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ core.CodeSynthesizer = (*Client)(nil)

// NewClient builds a generative client from synthesis configuration.
// Credential problems surface as configuration errors so callers can report
// them distinctly from upstream call failures.
func NewClient(ctx context.Context, cfg config.SynthesisConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := make([]option.ClientOption, 0, 2)
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsFile != "":
		tokenOpt, err := tokenSourceFromKeyFile(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tokenOpt)
	case cfg.Endpoint != "":
		// Endpoint overrides are for stubbed environments; skip auth there.
		opts = append(opts, option.WithoutAuthentication())
	default:
		return nil, apperrors.Configuration("Generative API credentials are not configured.")
	}

	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfiguration, "Failed to initialize the generative API client.")
	}

	model := cfg.Model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}

	return &Client{
		svc:     svc,
		model:   model,
		timeout: cfg.Timeout,
		logger:  logger.With("component", "gemini_client"),
	}, nil
}

// tokenSourceFromKeyFile loads a service account key and turns it into a
// client option. Error messages deliberately omit the key path.
func tokenSourceFromKeyFile(ctx context.Context, path string) (option.ClientOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfiguration, "Service account key not found.")
	}

	creds, err := google.CredentialsFromJSON(ctx, data, credentialsScope)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfiguration,
			"Google Cloud authentication failed. This can be due to an invalid service account key.")
	}

	return option.WithTokenSource(creds.TokenSource), nil
}

// GenerateScene asks the model for a complete scene script. The response has
// code fences stripped and whitespace trimmed; it is not validated here.
func (c *Client) GenerateScene(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: buildPrompt(prompt)}},
			},
		},
	}

	c.logger.DebugContext(ctx, "requesting scene generation", "model", c.model)

	resp, err := c.svc.Models.GenerateContent(c.model, req).Context(ctx).Do()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUpstream, "Error calling the generative API.")
	}

	text := firstCandidateText(resp)
	if text == "" {
		return "", apperrors.Upstream("The generative API returned an empty response.")
	}

	return stripFences(text), nil
}

func firstCandidateText(resp *generativelanguage.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

// Model returns the fully qualified model name used for generation.
func (c *Client) Model() string {
	return c.model
}
