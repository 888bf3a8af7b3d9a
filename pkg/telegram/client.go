package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"portfolio-backend/internal/domain"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.telegram.org"

// TimestampLayout is the server-local timestamp printed in relayed messages
const TimestampLayout = "2006-01-02 15:04:05 MST"

// ErrMalformedResponse is returned when the Bot API answers 2xx without ok=true
var ErrMalformedResponse = errors.New("telegram: malformed response")

// Config holds the Bot API credentials and transport settings
type Config struct {
	BaseURL   string
	BotToken  string
	ChatID    string
	ParseMode string
	// Timeout applies when HTTPClient is nil
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client relays contact messages to a Telegram chat via sendMessage
type Client struct {
	baseURL   string
	botToken  string
	chatID    string
	parseMode string
	http      *http.Client
	tmpl      *template.Template
}

// APIError is a non-2xx answer from the Bot API
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("telegram: status %d", e.StatusCode)
	}
	return fmt.Sprintf("telegram: status %d: %s", e.StatusCode, e.Description)
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// contactTemplate is rendered with html/template so user input is escaped for parse_mode HTML
const contactTemplate = `🔔 New Contact Form Submission

👤 Name: {{.Name}}
📧 Email: {{.Email}}
💬 Message:
{{.Message}}

📅 Submitted at: {{.SubmittedAt}}`

type templateData struct {
	Name        string
	Email       string
	Message     string
	SubmittedAt string
}

// NewClient creates a Telegram relay. Missing credentials are allowed and reported by IsConfigured.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:   baseURL,
		botToken:  cfg.BotToken,
		chatID:    cfg.ChatID,
		parseMode: cfg.ParseMode,
		http:      httpClient,
		tmpl:      template.Must(template.New("contact").Parse(contactTemplate)),
	}
}

func (c *Client) Name() string {
	return "telegram"
}

// IsConfigured checks that both the bot token and the chat id are present
func (c *Client) IsConfigured() bool {
	return c.botToken != "" && c.chatID != ""
}

// FormatContactMessage renders the fixed human-readable template
func (c *Client) FormatContactMessage(msg *domain.ContactMessage) (string, error) {
	var body bytes.Buffer
	err := c.tmpl.Execute(&body, templateData{
		Name:        msg.Name,
		Email:       msg.Email,
		Message:     msg.Message,
		SubmittedAt: msg.SubmittedAt.Format(TimestampLayout),
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute message template: %w", err)
	}
	return body.String(), nil
}

// Deliver formats the message and sends it with a single sendMessage call
func (c *Client) Deliver(ctx context.Context, msg *domain.ContactMessage) error {
	text, err := c.FormatContactMessage(msg)
	if err != nil {
		return err
	}
	return c.SendMessage(ctx, text)
}

// SendMessage posts text to the configured chat. No retry is attempted.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: c.parseMode,
	})
	if err != nil {
		return fmt.Errorf("telegram: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The URL carries the token; keep it out of the error chain
		return fmt.Errorf("telegram: request failed: %w", c.redact(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(raw, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Description: apiResp.Description}
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}
	if !apiResp.OK {
		return fmt.Errorf("%w: ok=false %s", ErrMalformedResponse, apiResp.Description)
	}
	return nil
}

func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)
}

func (c *Client) redact(err error) error {
	if c.botToken == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), c.botToken, "<redacted>"))
}
