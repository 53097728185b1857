package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mySmartShop/domain"
)

type OllamaConfig struct {
	OllamaBaseURL string
	OllamaModel   string
	OllamaTimeout time.Duration
}

// OllamaRepository talks to a local Ollama server for the two language tasks:
// narrating a recommendation list and scoring feedback sentiment. It is a
// best-effort collaborator; callers degrade gracefully when it errors.
type OllamaRepository struct {
	ollamaConfig OllamaConfig
	client       *http.Client
}

func NewOllamaRepository(cfg OllamaConfig) *OllamaRepository {
	timeout := cfg.OllamaTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OllamaRepository{
		ollamaConfig: cfg,
		client:       &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type payloadChat struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Explain narrates why the given products were recommended to the customer.
func (r *OllamaRepository) Explain(ctx context.Context, customer domain.Customer, prefs domain.PreferenceSummary, items []domain.RecommendationItem) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a shopping assistant. In two or three sentences, explain to the customer why these products were recommended. Do not mention internal scores.\n")
	sb.WriteString(fmt.Sprintf("Customer segment: %s. Preferred categories: %s. Price range: %s.\n",
		customer.CustomerSegment,
		strings.Join(prefs.PreferredCategories, ", "),
		prefs.PriceRange,
	))
	sb.WriteString("Recommended products:\n")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s (%s, price %.2f, rating %.1f)\n", item.ProductID, item.Category, item.Price, item.Rating))
	}

	return r.chat(ctx, sb.String())
}

// SentimentScore scores free-text feedback in [-1, 1].
func (r *OllamaRepository) SentimentScore(ctx context.Context, text string) (float64, error) {
	prompt := "Rate the sentiment of the following product feedback as a single number between -1 (very negative) and 1 (very positive). Reply with the number only.\n\n" + text

	reply, err := r.chat(ctx, prompt)
	if err != nil {
		return 0, err
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, fmt.Errorf("ollama returned non-numeric sentiment %q", reply)
	}

	if score < -1 {
		score = -1
	}
	if score > 1 {
		score = 1
	}

	return score, nil
}

func (r *OllamaRepository) chat(ctx context.Context, prompt string) (string, error) {
	url := r.ollamaConfig.OllamaBaseURL + "/api/chat"

	payload := payloadChat{
		Model: r.ollamaConfig.OllamaModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payloadByte)))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("ollama returned negative response %v: %s", res.StatusCode, string(bodyBytes))
	}

	var chatRes chatResponse
	if err := json.NewDecoder(res.Body).Decode(&chatRes); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	return strings.TrimSpace(chatRes.Message.Content), nil
}
