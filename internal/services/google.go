package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens against the tokeninfo
// endpoint and checks the audience matches our client id.
type GoogleVerifier struct {
	httpClient *http.Client
	clientID   string
	endpoint   string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		clientID:   clientID,
		endpoint:   googleTokenInfoURL,
	}
}

type tokenInfoResponse struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
	ErrorDesc     string `json:"error_description,omitempty"`
	EmailVerified string `json:"email_verified,omitempty"`
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokeninfo response: %w", err)
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse tokeninfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if info.ErrorDesc != "" {
			return nil, fmt.Errorf("invalid google token: %s", info.ErrorDesc)
		}
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	if v.clientID != "" && info.Audience != v.clientID {
		return nil, fmt.Errorf("google token issued for a different client")
	}

	return &GoogleClaims{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
	}, nil
}
