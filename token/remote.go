package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/jrsteele09/go-kin-bridge/kinerrors"
	"golang.org/x/oauth2"
)

const maxResponseBytes = 1 << 20

// RemoteSigner obtains signatures from a signing service at POST {url}/sign.
type RemoteSigner struct {
	endpoint    string
	authHeader  string
	tokenSource oauth2.TokenSource
	client      *http.Client
}

func NewRemoteSigner(serviceURL string, options ...Option) *RemoteSigner {
	s := newSettings(options)

	client := &http.Client{}
	if s.httpClient != nil {
		c := *s.httpClient
		client = &c
	}
	client.Timeout = s.timeout

	return &RemoteSigner{
		endpoint:    strings.TrimRight(serviceURL, "/") + "/sign",
		authHeader:  s.authHeader,
		tokenSource: s.tokenSource,
		client:      client,
	}
}

type signResponse struct {
	JWT   *string `json:"jwt"`
	Error any     `json:"error"`
}

func (r *RemoteSigner) Sign(ctx context.Context, claim claims.Claim) (string, error) {
	body, err := json.Marshal(claim)
	if err != nil {
		return "", kinerrors.Wrap(kinerrors.Signing, err, "failed to encode claim")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", kinerrors.Wrap(kinerrors.Signing, err, "failed to create sign request")
	}
	req.Header.Set("Content-Type", "application/json")
	if err := r.authorize(req); err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", kinerrors.Wrap(kinerrors.Signing, err, "JWT signing request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", kinerrors.Wrap(kinerrors.Signing, err, "failed to read sign service response")
	}

	var parsed signResponse
	parseErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK {
		if parseErr == nil && parsed.Error != nil {
			return "", kinerrors.Newf(kinerrors.Signing, "JWT signing failed: %v", parsed.Error)
		}
		return "", kinerrors.Newf(kinerrors.Signing, "JWT signing failed: %s (status %d)", strings.TrimSpace(string(raw)), resp.StatusCode)
	}

	if parseErr != nil {
		return "", kinerrors.Wrap(kinerrors.Signing, parseErr, "invalid sign service response")
	}
	if parsed.JWT == nil || *parsed.JWT == "" {
		return "", kinerrors.New(kinerrors.Signing, "JWT not received from sign service")
	}
	return *parsed.JWT, nil
}

func (r *RemoteSigner) authorize(req *http.Request) error {
	if r.tokenSource != nil {
		tok, err := r.tokenSource.Token()
		if err != nil {
			return kinerrors.Wrap(kinerrors.Signing, err, "failed to obtain sign service access token")
		}
		req.Header.Set("authorization", fmt.Sprintf("%s %s", tok.Type(), tok.AccessToken))
		return nil
	}
	if r.authHeader != "" {
		req.Header.Set("authorization", r.authHeader)
	}
	return nil
}

func (r *RemoteSigner) Strategy() Strategy {
	return StrategyRemote
}
