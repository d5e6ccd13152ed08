package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akarwowski/lingocards-backend/internal/pkg/envutil"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/services"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

// httpGenerator calls the upstream generation service that wraps the language
// model. It only moves JSON; candidate quality and deduplication are not its
// concern.
type httpGenerator struct {
	log     *logger.Logger
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPGenerator(baseLog *logger.Logger) (services.CardGenerator, error) {
	clientLog := baseLog.With("client", "HTTPGenerator")

	baseURL := envutil.Get("GENERATOR_URL", "")
	if baseURL == "" {
		return nil, fmt.Errorf("missing GENERATOR_URL")
	}

	return &httpGenerator{
		log:     clientLog,
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		apiKey:  envutil.Get("GENERATOR_API_KEY", ""),
	}, nil
}

func (g *httpGenerator) Generate(ctx context.Context, req services.GenerationRequest) ([]types.ImportableCard, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/flashcards", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generator request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var payload struct {
		Cards []types.ImportableCard `json:"cards"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding generator response: %w", err)
	}
	return payload.Cards, nil
}
