package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ProviderID is the health-professional identity provider. Unlike HealthID,
// its token endpoint authenticates with a Basic header built from the client
// credentials, and the profile endpoint requires client-id / secret-key
// headers alongside the bearer token. Profile payloads may carry a
// pre-combined name_th or split firstname_th / lastname_th fields.
type ProviderID struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
}

func NewProviderID(clientID, clientSecret, baseURL string) *ProviderID {
	return &ProviderID{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *ProviderID) Name() string { return "provider-id" }

func (p *ProviderID) AuthCodeURL(redirectURI, state, codeChallenge string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", "cid name_th name_eng email mobile_number")
	q.Set("state", state)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "S256")
	return p.baseURL + "/v1/oauth2/authorize?" + q.Encode()
}

func (p *ProviderID) basicAuth() string {
	creds := base64.StdEncoding.EncodeToString([]byte(p.clientID + ":" + p.clientSecret))
	return "Basic " + creds
}

type providerIDTokenResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
		TokenType    string `json:"token_type"`
		Scope        string `json:"scope"`
	} `json:"data"`
	Message   string `json:"message"`
	MessageTH string `json:"message_th"`
	Code      int    `json:"code"`
}

func (p *ProviderID) Exchange(ctx context.Context, code, verifier, redirectURI string) (*Token, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is missing")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("code_verifier", verifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build provider id token request: %w", err)
	}
	req.Header.Set("Authorization", p.basicAuth())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider id token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError("provider id token request", resp)
	}

	var tr providerIDTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode provider id token response: %w", err)
	}
	if tr.Data.AccessToken == "" {
		return nil, fmt.Errorf("provider id token response missing access_token")
	}

	return &Token{
		AccessToken:  tr.Data.AccessToken,
		RefreshToken: tr.Data.RefreshToken,
		TokenType:    tr.Data.TokenType,
		ExpiresIn:    tr.Data.ExpiresIn,
		Scope:        tr.Data.Scope,
	}, nil
}

type providerIDProfileResponse struct {
	Status int `json:"status"`
	Data   struct {
		AccountID   string `json:"account_id"`
		NameTH      string `json:"name_th"`
		FirstNameTH string `json:"firstname_th"`
		LastNameTH  string `json:"lastname_th"`
	} `json:"data"`
	Message string `json:"message"`
}

func (p *ProviderID) Profile(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/v1/services/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("build provider id profile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("client-id", p.clientID)
	req.Header.Set("secret-key", p.clientSecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider id profile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, responseError("provider id profile request", resp)
	}

	var pr providerIDProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode provider id profile response: %w", err)
	}

	name := pr.Data.NameTH
	if name == "" {
		name = pr.Data.FirstNameTH + " " + pr.Data.LastNameTH
	}

	return &Identity{
		ID:   pr.Data.AccountID,
		Name: name,
	}, nil
}
