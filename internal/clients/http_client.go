package clients

import (
	"net/http"
	"time"
)

// userAgentTransport stamps every outgoing request with USER_AGENT.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", USER_AGENT)
	return t.base.RoundTrip(req)
}

// NewHTTPClient returns the client used to download chat attachments.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DOWNLOAD_TIMEOUT
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: userAgentTransport{base: http.DefaultTransport},
	}
}
