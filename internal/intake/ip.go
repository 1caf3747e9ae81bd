package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// UnknownIP is reported when the client address cannot be resolved.
const UnknownIP = "unknown"

// DefaultIPLookupURL is the public lookup service the site has always used.
const DefaultIPLookupURL = "https://api.ipify.org?format=json"

// IPResolver looks up the submitter's public address. Implementations never
// fail; they return UnknownIP instead.
type IPResolver interface {
	Resolve(ctx context.Context) string
}

// StaticIP resolves to a fixed address.
type StaticIP string

// Resolve returns the fixed address, or UnknownIP if empty.
func (s StaticIP) Resolve(context.Context) string {
	if s == "" {
		return UnknownIP
	}
	return string(s)
}

// IpifyResolver queries an ipify-compatible JSON endpoint.
type IpifyResolver struct {
	url    string
	client *http.Client
}

// NewIpifyResolver creates a resolver for url (DefaultIPLookupURL if empty).
// A zero timeout leaves the client's default in place.
func NewIpifyResolver(url string, timeout time.Duration) *IpifyResolver {
	if url == "" {
		url = DefaultIPLookupURL
	}
	return &IpifyResolver{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Resolve returns the "ip" field of the lookup response or UnknownIP.
func (r *IpifyResolver) Resolve(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return UnknownIP
	}
	resp, err := r.client.Do(req)
	if err != nil {
		zap.L().Debug("intake: ip lookup failed", zap.Error(err))
		return UnknownIP
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 300 {
		return UnknownIP
	}
	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.IP == "" {
		return UnknownIP
	}
	return body.IP
}
