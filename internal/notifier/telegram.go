package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultAPIBaseURL  = "https://api.telegram.org"
	defaultSendTimeout = 10 * time.Second
	maxRetries         = 2
	userAgent          = "reclamation-gateway/v1"

	// Telegram caps bots at roughly 30 messages per second overall.
	telegramRatePerSecond = 30
)

// TelegramConfig holds the credentials and tuning for the Telegram sender.
type TelegramConfig struct {
	// BotToken is the bot API token. Empty enables demo mode.
	BotToken string

	// ChatID is the destination chat. Empty enables demo mode.
	ChatID string

	// APIBaseURL overrides the Telegram API host, for tests.
	APIBaseURL string

	// Timeout bounds one delivery attempt.
	Timeout time.Duration
}

// TelegramSender delivers notifications through the Telegram Bot API.
type TelegramSender struct {
	httpClient *http.Client
	logger     *zap.Logger
	cfg        TelegramConfig
	throttle   *rate.Limiter
	demoMode   bool
}

// NewTelegramSender creates a TelegramSender. Missing credentials switch the
// sender into demo mode rather than failing, so the gateway runs locally
// without a bot.
func NewTelegramSender(logger *zap.Logger, cfg TelegramConfig) *TelegramSender {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSendTimeout
	}

	demo := cfg.BotToken == "" || cfg.ChatID == ""
	if demo {
		logger.Warn("Telegram credentials not configured, sender runs in demo mode")
	}

	return &TelegramSender{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("telegram"),
		cfg:        cfg,
		throttle:   rate.NewLimiter(rate.Limit(telegramRatePerSecond), telegramRatePerSecond),
		demoMode:   demo,
	}
}

// Name implements Sender.
func (t *TelegramSender) Name() string { return "telegram" }

// DemoMode reports whether the sender logs instead of delivering.
func (t *TelegramSender) DemoMode() bool { return t.demoMode }

// sendMessageRequest is the Bot API sendMessage payload.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiResponse is the subset of the Bot API envelope needed for error
// reporting.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Deliver implements Sender. Transient failures are retried with linear
// backoff; the API's error description is surfaced on rejection.
func (t *TelegramSender) Deliver(ctx context.Context, text string) error {
	if t.demoMode {
		t.logger.Info("Demo mode, message not delivered", zap.String("message", text))
		sendTotal.WithLabelValues("demo").Inc()
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.cfg.ChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		sendTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal sendMessage payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries+1; attempt++ {
		if attempt > 0 {
			// Linear backoff: 1s, 2s.
			backoff := time.Duration(attempt) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				sendTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("cancelled during backoff: %w", ctx.Err())
			}
			sendTotal.WithLabelValues("retry").Inc()
		}

		if err := t.throttle.Wait(ctx); err != nil {
			sendTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("cancelled awaiting send slot: %w", err)
		}

		lastErr = t.doPost(ctx, body)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			sendTotal.WithLabelValues("error").Inc()
			return lastErr
		}
		t.logger.Debug("Transient delivery failure, will retry",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	sendTotal.WithLabelValues("error").Inc()
	return fmt.Errorf("delivery failed after %d attempts: %w", maxRetries+1, lastErr)
}

// doPost executes a single sendMessage call.
func (t *TelegramSender) doPost(ctx context.Context, body []byte) error {
	start := time.Now()
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.APIBaseURL, t.cfg.BotToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.httpClient.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		sendDuration.WithLabelValues("error").Observe(duration)
		return &transportError{err: err, retryable: true}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		sendTotal.WithLabelValues("success").Inc()
		sendDuration.WithLabelValues("success").Observe(duration)
		return nil
	}

	sendDuration.WithLabelValues("error").Observe(duration)

	// The Bot API explains rejections in the response envelope; surface
	// it so operators see more than a bare status code.
	reason := fmt.Sprintf("telegram returned HTTP %d", resp.StatusCode)
	var apiResp apiResponse
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiResp); decodeErr == nil && apiResp.Description != "" {
		reason = fmt.Sprintf("%s: %s", reason, apiResp.Description)
	}

	return &transportError{
		err:       errors.New(reason),
		retryable: resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests,
	}
}

// transportError wraps a delivery error with a retryable flag.
type transportError struct {
	err       error
	retryable bool
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// isRetryable reports whether the error is a transient failure worth
// retrying.
func isRetryable(err error) bool {
	var te *transportError
	if errors.As(err, &te) {
		return te.retryable
	}
	return false
}
