// Package vision implements the OCR engine on the Google Cloud Vision
// REST API.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yuk1-kondo/line2notion-receipts/internal/ocr"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

const defaultBaseURL = "https://vision.googleapis.com"

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

type Config struct {
	APIKey  string
	BaseURL string // defaults to the public API
}

func New(cfg Config, logger *slog.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: base,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

var _ ocr.Engine = (*Client)(nil)

type annotateRequest struct {
	Requests []imageRequest `json:"requests"`
}

type imageRequest struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []annotation `json:"responses"`
}

type annotation struct {
	FullTextAnnotation *struct {
		Text string `json:"text"`
	} `json:"fullTextAnnotation"`
	LogoAnnotations []struct {
		Description string  `json:"description"`
		Score       float64 `json:"score"`
	} `json:"logoAnnotations"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ExtractText runs DOCUMENT_TEXT_DETECTION over the image.
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	resp, err := c.annotate(ctx, image, "DOCUMENT_TEXT_DETECTION")
	if err != nil {
		return "", err
	}

	if resp.Error != nil {
		return "", fmt.Errorf("vision: %s", resp.Error.Message)
	}

	if resp.FullTextAnnotation == nil {
		return "", nil
	}

	return strings.TrimSpace(resp.FullTextAnnotation.Text), nil
}

// DetectLogo runs LOGO_DETECTION and returns the highest-scoring brand
// name, normalized. All failures degrade to "".
func (c *Client) DetectLogo(ctx context.Context, image []byte) string {
	resp, err := c.annotate(ctx, image, "LOGO_DETECTION")
	if err != nil {
		c.logger.Debug("logo detection failed", "error", err)
		return ""
	}

	if resp.Error != nil || len(resp.LogoAnnotations) == 0 {
		return ""
	}

	best := resp.LogoAnnotations[0]
	for _, a := range resp.LogoAnnotations[1:] {
		if a.Score > best.Score {
			best = a
		}
	}

	return receipt.NormalizeStoreName(best.Description)
}

func (c *Client) annotate(ctx context.Context, image []byte, featureType string) (*annotation, error) {
	reqBody := annotateRequest{
		Requests: []imageRequest{{
			Image:    imageContent{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []feature{{Type: featureType}},
		}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/v1/images:annotate?key=" + url.QueryEscape(c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("vision: status %d: %s", resp.StatusCode, msg)
	}

	var out annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(out.Responses) == 0 {
		return nil, fmt.Errorf("vision: empty response")
	}

	return &out.Responses[0], nil
}
