package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"golang.org/x/crypto/openpgp/armor" //nolint:staticcheck // armor parsing is fine within deprecation
	"gopkg.in/retry.v1"

	"rubikpi-setup/internal/logger"
)

const (
	publicKeyBlock = "PGP PUBLIC KEY BLOCK"
	maxKeySize     = 1 << 20
)

// KeyFetcher downloads repository signing keys.
type KeyFetcher struct {
	Client   *http.Client
	Strategy retry.Strategy
}

// NewKeyFetcher returns a KeyFetcher whose requests time out after timeout
// (zero means no timeout) and which tries up to attempts times with
// exponential backoff.
func NewKeyFetcher(timeout time.Duration, attempts int) *KeyFetcher {
	return &KeyFetcher{
		Client: &http.Client{Timeout: timeout},
		Strategy: retry.LimitCount(attempts, retry.Exponential{
			Initial: time.Second,
			Factor:  2,
		}),
	}
}

// statusError is a non-2xx response.
type statusError struct {
	url    string
	status string
	code   int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("failed to download %s: %s", e.url, e.status)
}

func (e *statusError) temporary() bool {
	return e.code >= 500 || e.code == http.StatusTooManyRequests
}

// Fetch downloads the key at url and checks it is an ASCII-armored public key
// block. Network errors and server-side failures are retried; a response that
// is not a key is not.
func (f *KeyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := retry.Start(f.Strategy, nil); attempt.Next(); {
		if attempt.Count() > 1 {
			logger.Warn("[WARN] Retrying key download (attempt %d): %v\n", attempt.Count(), lastErr)
		}
		var body []byte
		body, lastErr = f.get(ctx, url)
		if lastErr == nil {
			if err := checkArmoredKey(body); err != nil {
				return nil, fmt.Errorf("invalid key from %s: %w", url, err)
			}
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, lastErr
		}
		var se *statusError
		if errors.As(lastErr, &se) && !se.temporary() {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (f *KeyFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	logger.Debug("[DEBUG] GET %s\n", url)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{url: url, status: resp.Status, code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	if len(body) > maxKeySize {
		return nil, fmt.Errorf("key at %s is larger than %d bytes", url, maxKeySize)
	}
	return body, nil
}

func dearmor(armored []byte) ([]byte, error) {
	block, err := armor.Decode(bytes.NewReader(armored))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no armored block found")
		}
		return nil, err
	}
	if block.Type != publicKeyBlock {
		return nil, fmt.Errorf("expected %q, got %q", publicKeyBlock, block.Type)
	}
	// reading the body verifies the checksum
	return io.ReadAll(block.Body)
}

func checkArmoredKey(armored []byte) error {
	_, err := dearmor(armored)
	return err
}

// FormatKey returns the key bytes to store at path: apt reads armored keys from
// *.asc files and binary keys from *.gpg files.
func FormatKey(armored []byte, path string) ([]byte, error) {
	if filepath.Ext(path) != ".gpg" {
		return armored, nil
	}
	bin, err := dearmor(armored)
	if err != nil {
		return nil, fmt.Errorf("failed to dearmor key for %s: %w", path, err)
	}
	return bin, nil
}
