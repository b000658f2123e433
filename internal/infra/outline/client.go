// File: internal/infra/outline/client.go
package outline

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/adapter"
)

var _ adapter.KeyProvisioner = (*Client)(nil)

const requestTimeout = 10 * time.Second

// Client talks to per-region Outline management endpoints. Each CreateKey is
// a call pair: create the key, then set its data limit.
type Client struct {
	baseURLs map[model.Region]string
	client   *http.Client
	log      *zerolog.Logger
}

// New builds a provisioning client. insecure disables TLS certificate
// verification for self-hosted management servers with self-signed
// certificates; it must be opted into via config and is off by default.
func New(baseURLs map[model.Region]string, insecure bool, logger *zerolog.Logger) (*Client, error) {
	if len(baseURLs) == 0 {
		return nil, errors.New("no provisioning endpoints configured")
	}
	for region, u := range baseURLs {
		if strings.TrimSpace(u) == "" {
			return nil, fmt.Errorf("empty base url for region %s", region)
		}
	}
	httpClient := &http.Client{Timeout: requestTimeout}
	if insecure {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	cl := logger.With().Str("component", "OutlineClient").Logger()
	return &Client{baseURLs: baseURLs, client: httpClient, log: &cl}, nil
}

func (c *Client) CreateKey(ctx context.Context, region model.Region, ownerLabel string, quotaBytes int64) (*model.IssuedAccess, error) {
	base, ok := c.baseURLs[region]
	if !ok {
		return nil, domain.ErrUnknownRegion
	}

	keyID, accessURL, err := c.createAccessKey(ctx, base, ownerLabel)
	if err != nil {
		return nil, fmt.Errorf("create key (%s): %w", region, err)
	}
	if err := c.setDataLimit(ctx, base, keyID, quotaBytes); err != nil {
		return nil, fmt.Errorf("set data limit (%s, key %s): %w", region, keyID, err)
	}

	c.log.Info().Str("region", string(region)).Str("key_id", keyID).
		Int64("quota_bytes", quotaBytes).Msg("access key provisioned")
	return &model.IssuedAccess{
		Region:     region,
		AccessURL:  accessURL,
		QuotaBytes: quotaBytes,
		KeyID:      keyID,
	}, nil
}

func (c *Client) createAccessKey(ctx context.Context, base, name string) (string, string, error) {
	body, _ := json.Marshal(map[string]string{"name": name})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/access-keys", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", "", fmt.Errorf("%w: create returned %s: %s", domain.ErrProvisioning, resp.Status, string(b))
	}

	var out struct {
		ID        string `json:"id"`
		AccessURL string `json:"accessUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", err
	}
	if out.ID == "" || out.AccessURL == "" {
		return "", "", fmt.Errorf("%w: create response missing id or accessUrl", domain.ErrProvisioning)
	}
	return out.ID, out.AccessURL, nil
}

func (c *Client) setDataLimit(ctx context.Context, base, keyID string, limitBytes int64) error {
	payload := map[string]map[string]int64{"limit": {"bytes": limitBytes}}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/access-keys/%s/data-limit", base, keyID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: data-limit returned %s: %s", domain.ErrProvisioning, resp.Status, string(b))
	}
	return nil
}
