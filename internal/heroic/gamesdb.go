package heroic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vortextricks/vortextricks/internal/messages"
)

// gamesDBBaseURL serves GOG release metadata, including the sorting title
// Heroic derives prefix directory names from.
const gamesDBBaseURL = "https://gamesdb.gog.com/platforms/gog/external_releases"

// GamesDB looks up GOG release metadata, caching results per run.
type GamesDB struct {
	BaseURL string
	Client  *http.Client

	mu    sync.Mutex
	cache map[string]string
}

// NewGamesDB returns a client for the public GamesDB endpoint.
func NewGamesDB() *GamesDB {
	return &GamesDB{
		BaseURL: gamesDBBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type releaseResponse struct {
	Title        map[string]string `json:"title"`
	SortingTitle map[string]string `json:"sorting_title"`
}

// SortingTitle returns the sorting title for a GOG release id.
func (g *GamesDB) SortingTitle(ctx context.Context, gogID string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	g.mu.Lock()
	if title, ok := g.cache[gogID]; ok {
		g.mu.Unlock()
		return title, nil
	}
	g.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/"+gogID, nil)
	if err != nil {
		return "", fmt.Errorf(messages.GamesDBRequestErrFmt, gogID, err)
	}
	req.Header.Set("User-Agent", "vortextricks")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.GamesDBRequestErrFmt, gogID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(messages.GamesDBStatusFmt, gogID, resp.Status)
	}

	var payload releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf(messages.GamesDBDecodeErrFmt, gogID, err)
	}
	title := pickTitle(payload.SortingTitle)
	if title == "" {
		title = pickTitle(payload.Title)
	}
	if title == "" {
		return "", fmt.Errorf(messages.GamesDBDecodeErrFmt, gogID, fmt.Errorf("no sorting title in response"))
	}

	g.mu.Lock()
	if g.cache == nil {
		g.cache = map[string]string{}
	}
	g.cache[gogID] = title
	g.mu.Unlock()
	return title, nil
}

// pickTitle prefers the wildcard locale, then en-US, then any entry in
// stable key order.
func pickTitle(titles map[string]string) string {
	if t := strings.TrimSpace(titles["*"]); t != "" {
		return t
	}
	if t := strings.TrimSpace(titles["en-US"]); t != "" {
		return t
	}
	bestKey := ""
	best := ""
	for key, value := range titles {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if bestKey == "" || key < bestKey {
			bestKey = key
			best = value
		}
	}
	return best
}
