package heroes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herodex/internal/dataset"
	"herodex/internal/options"
	"herodex/pkg/models"
)

type listBody struct {
	Items     []models.Hero `json:"items"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PageCount int           `json:"page_count"`
	PageSize  string        `json:"page_size"`
	State     struct {
		SearchGroup string `json:"search_group"`
		Page        int    `json:"page"`
	} `json:"state"`
	Query string `json:"query"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	records, err := (&dataset.FileSource{Path: "../dataset/testdata/heroes.json"}).FetchAll(context.Background())
	require.NoError(t, err)
	ds := dataset.New("test", records)

	r := gin.New()
	NewHandler(ds, options.Compute(ds.Records())).RegisterRoutes(r)
	return r
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestListDefault(t *testing.T) {
	w := get(t, newRouter(t), "/heroes")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[listBody](t, w)
	assert.Equal(t, 7, body.Total)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 1, body.PageCount)
	assert.Equal(t, "20", body.PageSize)
	require.Len(t, body.Items, 7)
	assert.Equal(t, "A-Bomb", body.Items[0].Name)
	assert.Equal(t, "field=name&size=20&page=1&sort=name%2Casc", body.Query)
}

func TestListSearch(t *testing.T) {
	w := get(t, newRouter(t), "/heroes?q=bat&sort=powerstats.strength,desc")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[listBody](t, w)
	require.Len(t, body.Items, 3)
	assert.Equal(t, "Batman", body.Items[0].Name)
	assert.Equal(t, "Batgirl", body.Items[1].Name)
	assert.Equal(t, "Combat Suit", body.Items[2].Name)
}

func TestListClampsPage(t *testing.T) {
	w := get(t, newRouter(t), "/heroes?size=2&page=99&field=powerstats.power")
	body := decode[listBody](t, w)
	assert.Equal(t, 4, body.PageCount)
	assert.Equal(t, 4, body.Page)
	assert.Equal(t, 4, body.State.Page)
	assert.Equal(t, "powerstats", body.State.SearchGroup)
	assert.Len(t, body.Items, 1)
	assert.Contains(t, body.Query, "page=4")
}

func TestListEmpty(t *testing.T) {
	w := get(t, newRouter(t), "/heroes?race=Kryptonian")
	assert.Contains(t, w.Body.String(), `"items":[]`)
	body := decode[listBody](t, w)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 0, body.PageCount)
}

func TestGetByID(t *testing.T) {
	r := newRouter(t)

	w := get(t, r, "/heroes/70")
	require.Equal(t, http.StatusOK, w.Code)
	h := decode[models.Hero](t, w)
	assert.Equal(t, "Batman", h.Name)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/heroes/9999").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/heroes/batman").Code)
}

func TestOptions(t *testing.T) {
	r := newRouter(t)

	w := get(t, r, "/options")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"Human", "Mutant"}, all["race"])

	w = get(t, r, "/options?category=align")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"values":["bad","good","neutral"]`)

	assert.Equal(t, http.StatusBadRequest, get(t, r, "/options?category=planet").Code)
}

func TestOptionsValueLookup(t *testing.T) {
	r := newRouter(t)

	type known struct {
		Category string `json:"category"`
		Value    string `json:"value"`
		Known    bool   `json:"known"`
	}
	tests := []struct {
		target string
		want   known
	}{
		{"/options?category=race&value=Human", known{"race", "Human", true}},
		{"/options?category=race&value=human", known{"race", "human", false}},
		{"/options?category=hair&value=No+Hair", known{"hair", "No Hair", true}},
		{"/options?category=race&value=-", known{"race", "-", false}},
	}
	for _, tt := range tests {
		w := get(t, r, tt.target)
		require.Equal(t, http.StatusOK, w.Code, tt.target)
		assert.Equal(t, tt.want, decode[known](t, w), tt.target)
	}

	assert.Equal(t, http.StatusBadRequest, get(t, r, "/options?value=Human").Code)
}

func TestFields(t *testing.T) {
	w := get(t, newRouter(t), "/fields")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sort   []struct{ Key, Label string } `json:"sort"`
		Groups []struct {
			Key string `json:"key"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Sort, 16)
	assert.Equal(t, "name", body.Groups[0].Key)
}
