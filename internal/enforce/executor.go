package enforce

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/gilesshaxted/karma/internal/logging"
)

// RESTExecutor performs the enforcement REST calls directly over the warmed
// client pool instead of going through the SDK's request layer.
type RESTExecutor struct {
	pool        *HTTPPool
	rateLimiter *RateLimitMonitor
	token       string
	baseURL     string
}

func NewRESTExecutor(pool *HTTPPool, rateLimiter *RateLimitMonitor, token, baseURL string) *RESTExecutor {
	return &RESTExecutor{
		pool:        pool,
		rateLimiter: rateLimiter,
		token:       token,
		baseURL:     baseURL,
	}
}

// DeleteMessage removes the offending message. Best-effort: callers log the
// error and carry on with the remaining enforcement steps.
func (e *RESTExecutor) DeleteMessage(channelID, messageID, reason string) error {
	if !e.rateLimiter.CanExecute("delete", channelID) {
		return fmt.Errorf("rate limited")
	}

	url := fmt.Sprintf("%s/channels/%s/messages/%s", e.baseURL, channelID, messageID)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodDelete)
	req.Header.Set("Authorization", "Bot "+e.token)
	req.Header.Set("X-Audit-Log-Reason", reason)

	client := e.pool.GetClient()
	if err := client.DoTimeout(req, resp, 3*time.Second); err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}

	e.rateLimiter.UpdateFromResponse(resp, "delete", channelID)

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		logging.Debug("Deleted message %s in channel %s", messageID, channelID)
		return nil
	}
	return fmt.Errorf("delete failed: status %d", status)
}

// ApplyTimeout sets communication_disabled_until on the member. Used for both
// the 6-hour tier-2 timeout and the 7-day tier-3 suspension.
func (e *RESTExecutor) ApplyTimeout(guildID, userID string, d time.Duration, reason string) error {
	if !e.rateLimiter.CanExecute("timeout", guildID) {
		return fmt.Errorf("rate limited")
	}

	url := fmt.Sprintf("%s/guilds/%s/members/%s", e.baseURL, guildID, userID)

	until := time.Now().UTC().Add(d).Format(time.RFC3339)
	body, _ := json.Marshal(map[string]string{
		"communication_disabled_until": until,
	})

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPatch)
	req.Header.Set("Authorization", "Bot "+e.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Audit-Log-Reason", reason)
	req.SetBody(body)

	client := e.pool.GetClient()
	if err := client.DoTimeout(req, resp, 3*time.Second); err != nil {
		return fmt.Errorf("timeout request failed: %w", err)
	}

	e.rateLimiter.UpdateFromResponse(resp, "timeout", guildID)

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		logging.Info("Timed out user %s in guild %s for %s", userID, guildID, d)
		return nil
	}
	return fmt.Errorf("timeout failed: status %d", status)
}
