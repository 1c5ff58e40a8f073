package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// PubNubConfig holds the account and endpoint of a PubNub-compatible REST
// service. Nothing here has a compiled-in default except the host.
type PubNubConfig struct {
	Host    string
	Scheme  string
	PubKey  string
	SubKey  string
	Timeout time.Duration
}

const DefaultPubNubHost = "ps.pndsn.com"

// PubNub implements Channel over the PubNub publish and v2 subscribe REST
// calls.
type PubNub struct {
	cfg    PubNubConfig
	client *http.Client
}

func NewPubNub(cfg PubNubConfig) (*PubNub, error) {
	if cfg.SubKey == "" {
		return nil, fmt.Errorf("pubnub: missing subscribe key")
	}
	if cfg.Host == "" {
		cfg.Host = DefaultPubNubHost
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.Timeout == 0 {
		// Subscribe calls are held open for up to 280s by the service.
		cfg.Timeout = 310 * time.Second
	}
	return &PubNub{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}, nil
}

type subscribeResponse struct {
	T struct {
		T string `json:"t"`
	} `json:"t"`
	M []struct {
		D json.RawMessage `json:"d"`
	} `json:"m"`
}

func (p *PubNub) Publish(ctx context.Context, channel string, msg []byte) (Timetoken, error) {
	if p.cfg.PubKey == "" {
		return "", fmt.Errorf("pubnub: missing publish key")
	}
	path := fmt.Sprintf("/publish/%s/%s/0/%s/0/%s",
		url.PathEscape(p.cfg.PubKey), url.PathEscape(p.cfg.SubKey),
		url.PathEscape(channel), url.PathEscape(string(msg)))
	body, err := p.get(ctx, path)
	if err != nil {
		return "", fmt.Errorf("publish to %s: %w", channel, err)
	}
	// [1, "Sent", "16150000000000000"]
	var res []interface{}
	if err := json.Unmarshal(body, &res); err != nil || len(res) < 3 {
		return "", fmt.Errorf("publish to %s: unexpected response %s", channel, body)
	}
	if n, _ := res[0].(float64); n != 1 {
		return "", fmt.Errorf("publish to %s: rejected: %v", channel, res[1])
	}
	tt, _ := res[2].(string)
	return Timetoken(tt), nil
}

func (p *PubNub) Subscribe(ctx context.Context, channel string, cursor Timetoken) (Batch, error) {
	if cursor == "" {
		cursor = Zero
	}
	path := fmt.Sprintf("/v2/subscribe/%s/%s/0/%s",
		url.PathEscape(p.cfg.SubKey), url.PathEscape(channel), url.PathEscape(string(cursor)))
	body, err := p.get(ctx, path)
	if err != nil {
		return Batch{}, fmt.Errorf("subscribe to %s: %w", channel, err)
	}
	var res subscribeResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return Batch{}, fmt.Errorf("subscribe to %s: %w", channel, err)
	}
	batch := Batch{Cursor: Timetoken(res.T.T)}
	for _, m := range res.M {
		batch.Messages = append(batch.Messages, []byte(m.D))
	}
	return batch, nil
}

func (p *PubNub) get(ctx context.Context, path string) ([]byte, error) {
	u := p.cfg.Scheme + "://" + p.cfg.Host + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", resp.Status, body)
	}
	return body, nil
}

func (p *PubNub) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
