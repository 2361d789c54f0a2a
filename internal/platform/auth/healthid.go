package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HealthID is the citizen-facing MOPH identity provider. The token endpoint
// takes client credentials in the form body; the profile endpoint is a plain
// bearer-token GET. Profile name fields are split (first_name_th /
// last_name_th).
type HealthID struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
}

func NewHealthID(clientID, clientSecret, baseURL string) *HealthID {
	return &HealthID{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HealthID) Name() string { return "healthid" }

func (p *HealthID) AuthCodeURL(redirectURI, state, codeChallenge string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "S256")
	return p.baseURL + "/oauth/redirect?" + q.Encode()
}

type healthIDTokenResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccessToken    string `json:"access_token"`
		TokenType      string `json:"token_type"`
		ExpiresIn      int    `json:"expires_in"`
		ExpirationDate string `json:"expiration_date"`
		AccountID      string `json:"account_id"`
	} `json:"data"`
	Message string `json:"message"`
}

func (p *HealthID) Exchange(ctx context.Context, code, verifier, redirectURI string) (*Token, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is missing")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("code_verifier", verifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build health id token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health id token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError("health id token request", resp)
	}

	var tr healthIDTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode health id token response: %w", err)
	}
	if tr.Data.AccessToken == "" {
		return nil, fmt.Errorf("health id token response missing access_token")
	}

	return &Token{
		AccessToken: tr.Data.AccessToken,
		TokenType:   tr.Data.TokenType,
		ExpiresIn:   tr.Data.ExpiresIn,
	}, nil
}

type healthIDProfileResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccountID   string `json:"account_id"`
		FirstNameTH string `json:"first_name_th"`
		LastNameTH  string `json:"last_name_th"`
	} `json:"data"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func (p *HealthID) Profile(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/go-api/v1/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("build health id profile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health id profile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError("health id profile request", resp)
	}

	var pr healthIDProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode health id profile response: %w", err)
	}

	return &Identity{
		ID:   pr.Data.AccountID,
		Name: pr.Data.FirstNameTH + " " + pr.Data.LastNameTH,
	}, nil
}

// responseError surfaces the response body of a failed upstream call so
// sign-in failures carry the provider's diagnostics.
func responseError(context string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s failed: %d %s", context, resp.StatusCode, string(body))
}
