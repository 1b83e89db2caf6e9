// Package walletclient talks to the wallet HTTP API from a device: the
// customer app issues tokens and the store terminal redeems them.
package walletclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Ryanbarcelos/fidelize-sub001/internal/loyalty/dto"
	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the wallet API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wallet api: %d %s", e.Status, e.Message)
}

type agentResult struct {
	status int
	body   []byte
	errs   []error
}

type Client struct {
	baseURL     string
	accessToken string
}

// New returns a client for baseURL. accessToken is the user's bearer token
// and may be empty for terminal-only use.
func New(baseURL, accessToken string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), accessToken: accessToken}
}

func (c *Client) IssueToken(ctx context.Context, cardID, actionType string) (*dto.TokenOutput, error) {
	var out dto.TokenOutput
	in := dto.GenerateTokenInput{CardID: cardID, ActionType: actionType}
	if err := c.post(ctx, "/api/v1/tokens", in, fiber.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Redeem(ctx context.Context, in dto.RedeemInput) (*dto.RedeemOutput, error) {
	var out dto.RedeemOutput
	if err := c.post(ctx, "/api/v1/tokens/redeem", in, fiber.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body any, want int, out any) error {
	timeout := defaultTimeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(c.baseURL + path).JSON(body).Timeout(timeout)
	if c.accessToken != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.accessToken)
	}

	// The agent has no context support; a cancelled caller gets control back
	// at once and the request finishes on its own within the timeout.
	done := make(chan agentResult, 1)
	go func() {
		var res agentResult
		res.status, res.body, res.errs = agent.Bytes()
		done <- res
	}()

	var res agentResult
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-done:
	}
	status, raw := res.status, res.body
	if len(res.errs) > 0 {
		return fmt.Errorf("wallet api request failed: %w", res.errs[0])
	}

	if status != want {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		return &APIError{Status: status, Message: apiErr.Error}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode wallet response: %w", err)
	}
	return nil
}
