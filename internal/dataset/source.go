package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"herodex/internal/store"
)

// DefaultURL is the published superhero dataset.
const DefaultURL = "https://rawcdn.githack.com/akabab/superhero-api/0.2.0/api/all.json"

// Source is implemented by each place records can come from. Each source
// fetches its own format and returns records in dataset order.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]Record, error)
}

// HTTPSource fetches the JSON array with a single GET. There is no retry.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) FetchAll(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("http source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http source: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("http source: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http source: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	records, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("http source: %w", err)
	}
	return records, nil
}

// FileSource reads the same JSON array from disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) FetchAll(ctx context.Context) ([]Record, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	records, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("file source %s: %w", s.Path, err)
	}
	return records, nil
}

// StoreSource reads an imported sqlite snapshot.
type StoreSource struct {
	Repo *store.Repo
	Path string
}

func (s *StoreSource) Name() string { return "sqlite:" + s.Path }

func (s *StoreSource) FetchAll(ctx context.Context) ([]Record, error) {
	rows, err := s.Repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("store source: %w", err)
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		r, err := NewRecord(row.Doc)
		if err != nil {
			return nil, fmt.Errorf("store source: hero %d: %w", row.ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Snapshot writes records into repo, replacing whatever it held.
func Snapshot(ctx context.Context, repo *store.Repo, records []Record) error {
	rows := make([]store.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, store.Row{ID: r.ID(), Name: r.Name(), Doc: r.raw})
	}
	return repo.SaveAll(ctx, rows)
}

// Kind classifies a source location: an http(s) URL, a "sqlite:" path or a
// plain file path.
func Kind(loc string) string {
	switch {
	case loc == "", strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return "http"
	case strings.HasPrefix(loc, "sqlite:"):
		return "sqlite"
	default:
		return "file"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
