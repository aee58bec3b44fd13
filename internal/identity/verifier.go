package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// PlatformIdentity is what the messaging platform asserts about a user.
type PlatformIdentity struct {
	UserID      string
	DisplayName string
}

// Verifier validates a platform identity token. The platform's own protocol
// is out of scope; implementations only need to say who the token belongs to.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*PlatformIdentity, error)
}

// LineVerifier checks an ID token against the LINE verify endpoint.
type LineVerifier struct {
	channelID  string
	verifyURL  string
	httpClient *http.Client
}

func NewLineVerifier(channelID, verifyURL string, httpClient *http.Client) *LineVerifier {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &LineVerifier{channelID: channelID, verifyURL: verifyURL, httpClient: httpClient}
}

// verifyResponse is the subset of the verify endpoint's payload we use.
type verifyResponse struct {
	Sub  string `json:"sub"`
	Name string `json:"name"`
}

func (v *LineVerifier) Verify(ctx context.Context, idToken string) (*PlatformIdentity, error) {
	form := url.Values{
		"id_token":  {idToken},
		"client_id": {v.channelID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("verify read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verify endpoint returned status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("verify decode: %w", err)
	}
	if vr.Sub == "" {
		return nil, fmt.Errorf("verify response missing subject")
	}

	return &PlatformIdentity{UserID: vr.Sub, DisplayName: vr.Name}, nil
}
