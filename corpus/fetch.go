package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrBadStatus = errors.New("unexpected status code")

// Fetcher downloads raw word lists.
type Fetcher struct {
	Client   *http.Client
	Attempts uint
	Delay    time.Duration
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Attempts: 3,
		Delay:    time.Second,
	}
}

// Fetch downloads the newline-delimited list at url and returns the
// lowercased words that pass the filter, in list order and without
// repeats. Server errors and transport failures are retried; a 4xx is not.
func (f *Fetcher) Fetch(ctx context.Context, url string, filter Filter) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return f.get(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(f.Attempts),
		retry.Delay(f.Delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn().Err(err).Uint("attempt", n+1).Str("url", url).Msg("retrying download")
		}),
	)
	if err != nil {
		return nil, err
	}

	lower := cases.Lower(language.Und)
	raw := strings.Split(strings.TrimSpace(string(body)), "\n")
	for i, w := range raw {
		raw[i] = lower.String(strings.TrimSpace(w))
	}
	c, err := Load(strings.NewReader(strings.Join(raw, "\n")), filter)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("raw", len(raw)).Int("kept", len(c)).Msg("downloaded word list")
	return c.Texts(), nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, retry.Unrecoverable(err)
		}
		return nil, err
	}
	return io.ReadAll(resp.Body)
}
