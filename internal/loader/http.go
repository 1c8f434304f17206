package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultProbeTimeout = 10 * time.Second

// HTTPInjector treats a candidate as loaded when a GET for it answers 200.
// Nothing is attached anywhere, so failures leave nothing to remove.
type HTTPInjector struct {
	client    *http.Client
	userAgent string
}

func NewHTTPInjector(client *http.Client, userAgent string) *HTTPInjector {
	if client == nil {
		client = &http.Client{Timeout: defaultProbeTimeout}
	}
	return &HTTPInjector{client: client, userAgent: userAgent}
}

func (h *HTTPInjector) Inject(ctx context.Context, src string) (Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", src, err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", src, resp.StatusCode)
	}
	return nil, nil
}
