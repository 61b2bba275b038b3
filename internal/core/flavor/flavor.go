// Package flavor supplies per-level narration. Fetching is best effort:
// any provider failure falls back to a local table, so the tick path
// never depends on a narration result.
package flavor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/herdsync/herdsync/internal/core/observability/log"
)

// Text is one level's narration.
type Text struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Provider fetches narration for a level. Implementations may fail;
// Source absorbs the failure.
type Provider interface {
	Flavor(ctx context.Context, level int) (Text, error)
}

// fallbackTable is the deterministic local narration, indexed by
// (level-1) mod len.
var fallbackTable = []Text{
	{Title: "Open Pasture", Description: "The flock grazes easy. Walk them home before dusk."},
	{Title: "Stony Ground", Description: "Rocks split the field. Keep the flock moving around them."},
	{Title: "Restless Wind", Description: "Something has the sheep spooked. Press gently or they scatter."},
	{Title: "Crowded Field", Description: "More sheep, less room. Sort the colors into their pens."},
	{Title: "Long Dusk", Description: "The light is going. One more field and the day is done."},
}

// Fallback returns the local narration for a level.
func Fallback(level int) Text {
	if level < 1 {
		level = 1
	}
	return fallbackTable[(level-1)%len(fallbackTable)]
}

// HTTPProvider fetches narration from a remote endpoint returning
// {"title": ..., "description": ...} JSON.
type HTTPProvider struct {
	url    string
	client *http.Client
}

func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Flavor(ctx context.Context, level int) (Text, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?level=%d", p.url, level), nil)
	if err != nil {
		return Text{}, fmt.Errorf("build narration request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Text{}, fmt.Errorf("fetch narration: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Text{}, fmt.Errorf("narration endpoint returned %d", resp.StatusCode)
	}
	var t Text
	if err = json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return Text{}, fmt.Errorf("decode narration: %w", err)
	}
	if t.Title == "" {
		return Text{}, fmt.Errorf("narration endpoint returned empty title")
	}
	return t, nil
}

// Source wraps an optional Provider with the local fallback. A nil
// provider always serves fallback text.
type Source struct {
	provider Provider
	log      log.Log
}

func NewSource(provider Provider, logger log.Log) *Source {
	if logger == nil {
		logger = log.Provide()
	}
	return &Source{provider: provider, log: logger}
}

// Get never fails. Provider errors are logged and replaced by the
// fallback table; callers cannot distinguish the two beyond content.
func (s *Source) Get(ctx context.Context, level int) Text {
	if s.provider == nil {
		return Fallback(level)
	}
	t, err := s.provider.Flavor(ctx, level)
	if err != nil {
		s.log.Warn("narration fetch failed, using fallback",
			log.Int("level", level), log.Error("err", err))
		return Fallback(level)
	}
	return t
}
