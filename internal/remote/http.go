package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Operation names, matching the backend's routing table.
const (
	opSignUp      = "auth/signUpEmail"
	opSignIn      = "auth/signInEmail"
	opSignOut     = "auth/signOut"
	opCurrentUser = "auth/getCurrentUser"
	opProfiles    = "users/list"
)

// HTTPClient talks to the identity service by POSTing JSON argument objects
// to <base>/api/<operation>. Timeouts are whatever the injected http.Client
// enforces; this layer adds none of its own.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the service at baseURL. A nil httpClient
// falls back to http.DefaultClient.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *HTTPClient) SignUpEmail(ctx context.Context, name, email, password string) (AuthResult, error) {
	args := map[string]any{"name": name, "email": email, "password": password}
	var result AuthResult
	if err := c.call(ctx, opSignUp, "", args, &result); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) SignInEmail(ctx context.Context, email, password string, rememberMe bool) (AuthResult, error) {
	args := map[string]any{"email": email, "password": password, "rememberMe": rememberMe}
	var result AuthResult
	if err := c.call(ctx, opSignIn, "", args, &result); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) SignOut(ctx context.Context, token string) error {
	return c.call(ctx, opSignOut, token, map[string]any{}, nil)
}

func (c *HTTPClient) GetCurrentUser(ctx context.Context, token string) (CurrentUser, error) {
	var result CurrentUser
	if err := c.call(ctx, opCurrentUser, token, map[string]any{}, &result); err != nil {
		return CurrentUser{}, err
	}
	return result, nil
}

func (c *HTTPClient) ListProfiles(ctx context.Context, token string) ([]ProfileInfo, error) {
	var result []ProfileInfo
	if err := c.call(ctx, opProfiles, token, map[string]any{}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// call performs one named operation. Service-reported failures come back as
// *Error with the message untouched; failures to reach the service at all
// are wrapped in ErrUnavailable.
func (c *HTTPClient) call(ctx context.Context, op, token string, args any, out any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode %s args: %w", op, err)
	}

	url := c.baseURL + "/api/" + op
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Message: readErrorMessage(resp)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func readErrorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return resp.Status
}
