package genai

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fasthttp"
)

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
	ErrEmptyResponse = errors.New("model returned no candidates")
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client is a minimal Gemini generateContent client. It is strictly
// advisory: callers are expected to swallow its errors and fall back.
type Client struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewClientFromEnv builds a client from GEMINI_API_KEY / GEMINI_MODEL.
func NewClientFromEnv() *Client {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   model,
		BaseURL: defaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Wire shapes of the generateContent endpoint.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateText sends a prompt and returns the first candidate's text.
func (c *Client) GenerateText(prompt string) (string, error) {
	return c.generate(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
}

// GenerateJSON asks the model for a JSON reply and decodes it into out.
func (c *Client) GenerateJSON(prompt string, out interface{}) error {
	text, err := c.generate(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(text), out)
}

func (c *Client) generate(reqBody generateRequest) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if err := fasthttp.DoTimeout(req, resp, timeout); err != nil {
		return "", err
	}

	var decoded generateResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", err
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
