package heroic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/vortextricks/vortextricks/internal/logging"
)

func writeInstalled(t *testing.T, configDir string, content string) {
	t.Helper()
	path := filepath.Join(configDir, "gog_store", "installed.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEnumerate(t *testing.T) {
	configDir := t.TempDir()
	writeInstalled(t, configDir, `{
		"installed": [
			{"appName": "1207664663", "install_path": "/games/Cyberpunk 2077", "platform": "windows"},
			{"appName": "1453375253", "install_path": "/games/Stardew Valley", "platform": "windows"}
		]
	}`)

	entries, err := Launcher{ConfigDir: configDir}.Enumerate(logging.Discard())
	if err != nil {
		t.Fatalf("Enumerate error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LocalID != "1207664663" || entries[0].Name != "Cyberpunk 2077" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[0].InstallPath != "/games/Cyberpunk 2077" {
		t.Fatalf("unexpected install path %s", entries[0].InstallPath)
	}
}

func TestEnumerateSkipsIncompleteEntries(t *testing.T) {
	configDir := t.TempDir()
	writeInstalled(t, configDir, `{
		"installed": [
			{"appName": "", "install_path": "/games/Nameless"},
			{"appName": "42", "install_path": ""},
			{"appName": "7", "install_path": "/games/Kept"}
		]
	}`)

	entries, err := Launcher{ConfigDir: configDir}.Enumerate(logging.Discard())
	if err != nil {
		t.Fatalf("Enumerate error: %v", err)
	}
	if len(entries) != 1 || entries[0].LocalID != "7" {
		t.Fatalf("incomplete entries must be skipped, got %+v", entries)
	}
}

func TestEnumerateWrongShape(t *testing.T) {
	configDir := t.TempDir()
	writeInstalled(t, configDir, `{"installed": {"not": "a list"}}`)
	l := Launcher{ConfigDir: configDir}
	if _, err := l.Enumerate(logging.Discard()); err == nil {
		t.Fatalf("expected error for non-list installed field")
	}
}

func TestEnumerateMissingConfig(t *testing.T) {
	l := Launcher{ConfigDir: filepath.Join(t.TempDir(), "nope")}
	if l.Detected() {
		t.Fatalf("Detected must be false without installed.json")
	}
	if _, err := l.Enumerate(logging.Discard()); err == nil {
		t.Fatalf("expected error for missing installed.json")
	}
}

func TestSortingTitle(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		_, _ = w.Write([]byte(`{"title":{"*":"Cyberpunk 2077"},"sorting_title":{"*":"Cyberpunk 2077"}}`))
	}))
	t.Cleanup(server.Close)

	db := &GamesDB{BaseURL: server.URL, Client: server.Client()}
	title, err := db.SortingTitle(context.Background(), "1207664663")
	if err != nil {
		t.Fatalf("SortingTitle error: %v", err)
	}
	if title != "Cyberpunk 2077" {
		t.Fatalf("unexpected title %q", title)
	}
	if requested != "/1207664663" {
		t.Fatalf("unexpected request path %s", requested)
	}
}

func TestSortingTitleCachesPerRun(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"sorting_title":{"*":"Stardew Valley"}}`))
	}))
	t.Cleanup(server.Close)

	db := &GamesDB{BaseURL: server.URL, Client: server.Client()}
	for i := 0; i < 3; i++ {
		if _, err := db.SortingTitle(context.Background(), "1453375253"); err != nil {
			t.Fatalf("SortingTitle error: %v", err)
		}
	}
	if hits != 1 {
		t.Fatalf("expected one request, got %d", hits)
	}
}

func TestSortingTitleFallsBackToTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title":{"en-US":"Divinity"}}`))
	}))
	t.Cleanup(server.Close)

	db := &GamesDB{BaseURL: server.URL, Client: server.Client()}
	title, err := db.SortingTitle(context.Background(), "1")
	if err != nil {
		t.Fatalf("SortingTitle error: %v", err)
	}
	if title != "Divinity" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestSortingTitleBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	db := &GamesDB{BaseURL: server.URL, Client: server.Client()}
	if _, err := db.SortingTitle(context.Background(), "404"); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"sorting_title":{"*":"Cyberpunk 2077"}}`))
	}))
	t.Cleanup(server.Close)

	l := Launcher{
		PrefixesRoot: "/home/u/Games/Heroic/Prefixes/default",
		DB:           &GamesDB{BaseURL: server.URL, Client: server.Client()},
	}
	prefix, err := l.Prefix(context.Background(), "1207664663")
	if err != nil {
		t.Fatalf("Prefix error: %v", err)
	}
	if prefix != "/home/u/Games/Heroic/Prefixes/default/Cyberpunk 2077" {
		t.Fatalf("unexpected prefix %s", prefix)
	}
}
