package dataset

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herodex/internal/field"
	"herodex/internal/store"
	"herodex/pkg/database"
)

const fixture = "testdata/heroes.json"

var quiet = log.New(io.Discard, "", 0)

func TestParseFixture(t *testing.T) {
	b, err := os.ReadFile(fixture)
	require.NoError(t, err)

	records, err := Parse(b)
	require.NoError(t, err)
	require.Len(t, records, 7)

	batman := records[1]
	assert.Equal(t, 70, batman.ID())
	assert.Equal(t, "Batman", batman.Name())
	assert.Equal(t, "188 cm", batman.Hero().Appearance.MetricHeight())
	assert.Equal(t, "Insider", batman.Hero().Alias())
	assert.Equal(t, "188 cm", batman.Resolve(field.Parse("appearance.height[1]")).Text())

	suit := records[4]
	assert.Equal(t, "", suit.Hero().Appearance.RaceName())
	assert.True(t, suit.Resolve(field.Parse("appearance.race")).IsMissing())
}

func TestParseRejectsNonArray(t *testing.T) {
	_, err := Parse([]byte(`{"id": 1}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[{"id": "one"}]`))
	assert.Error(t, err)
}

func TestDatasetGet(t *testing.T) {
	a, err := NewRecord([]byte(`{"id": 1, "name": "first"}`))
	require.NoError(t, err)
	b, err := NewRecord([]byte(`{"id": 1, "name": "second"}`))
	require.NoError(t, err)

	d := New("test", []Record{a, b})
	assert.Equal(t, 2, d.Len())

	got, ok := d.Get(1)
	require.True(t, ok)
	assert.Equal(t, "first", got.Name())

	_, ok = d.Get(99)
	assert.False(t, ok)
}

func TestRecordsReturnsCopy(t *testing.T) {
	a, err := NewRecord([]byte(`{"id": 1, "name": "A"}`))
	require.NoError(t, err)
	d := New("test", []Record{a})

	rs := d.Records()
	rs[0] = Record{}
	assert.Equal(t, "A", d.Records()[0].Name())
}

func TestLoadFromFile(t *testing.T) {
	d, err := Load(context.Background(), &FileSource{Path: fixture}, quiet)
	require.NoError(t, err)
	assert.Equal(t, 7, d.Len())
	assert.Equal(t, "file:"+fixture, d.Source())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), &FileSource{Path: "testdata/nope.json"}, quiet)
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	b, err := os.ReadFile(fixture)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/all.json" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	records, err := NewHTTPSource(srv.URL+"/api/all.json", 0).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 7)

	_, err = NewHTTPSource(srv.URL+"/missing", 0).FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	records, err := (&FileSource{Path: fixture}).FetchAll(ctx)
	require.NoError(t, err)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "snap.db")})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db))

	repo := store.NewRepo(db)
	require.NoError(t, Snapshot(ctx, repo, records))

	back, err := (&StoreSource{Repo: repo}).FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, back, len(records))
	for i := range records {
		assert.Equal(t, records[i].ID(), back[i].ID())
		assert.JSONEq(t, string(records[i].Raw()), string(back[i].Raw()))
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	records, err := (&FileSource{Path: fixture}).FetchAll(context.Background())
	require.NoError(t, err)

	b, err := Marshal(records)
	require.NoError(t, err)
	again, err := Parse(b)
	require.NoError(t, err)
	assert.Len(t, again, len(records))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "http", Kind(""))
	assert.Equal(t, "http", Kind(DefaultURL))
	assert.Equal(t, "sqlite", Kind("sqlite:/tmp/x.db"))
	assert.Equal(t, "file", Kind("data/all.json"))
}

func TestOpenSourceSnapshotReadOnly(t *testing.T) {
	ctx := context.Background()
	records, err := (&FileSource{Path: fixture}).FetchAll(ctx)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snap.db")
	db, err := database.Open(database.DefaultConfig(path))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, Snapshot(ctx, store.NewRepo(db), records))
	require.NoError(t, db.Close())

	src, closeSrc, err := OpenSource("sqlite:", path, 0)
	require.NoError(t, err)
	defer closeSrc()

	data, err := Load(ctx, src, quiet)
	require.NoError(t, err)
	assert.Len(t, data.Records(), len(records))

	ss, ok := src.(*StoreSource)
	require.True(t, ok)
	assert.Error(t, Snapshot(ctx, ss.Repo, records[:1]))
}

func TestOpenSourceMissingSnapshot(t *testing.T) {
	_, _, err := OpenSource("sqlite:"+filepath.Join(t.TempDir(), "none.db"), "", 0)
	assert.Error(t, err)
}
