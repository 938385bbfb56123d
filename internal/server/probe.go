package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Probe issues a GET against url and reports whether it answered 200.
// It backs the healthcheck command, so a running server can be verified
// without curl or wget.
func Probe(ctx context.Context, url string, timeout time.Duration) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned HTTP %d", url, resp.StatusCode)
	}
	return nil
}
