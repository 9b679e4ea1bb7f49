package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batman = `{
  "id": 70,
  "name": "Batman",
  "powerstats": {"intelligence": 100, "strength": 26},
  "appearance": {"race": "Human", "height": ["6'2", "188 cm"], "weight": ["210 lb", "95 kg"], "hairColor": null},
  "biography": {"aliases": ["Bruce Wayne", "Matches <Malone>"]},
  "flag": true
}`

func TestParse(t *testing.T) {
	tests := []struct {
		key  string
		want []Segment
	}{
		{"name", []Segment{{Name: "name"}}},
		{"appearance.height[1]", []Segment{{Name: "appearance"}, {Name: "height", Index: 1, Indexed: true}}},
		{"a[x]", []Segment{{Name: "a[x]"}}},
		{"[2]", []Segment{{Name: "[2]"}}},
		{"a[]", []Segment{{Name: "a[]"}}},
		{"", []Segment{{Name: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			p := Parse(tt.key)
			assert.Equal(t, tt.want, p.Segments())
			assert.Equal(t, tt.key, p.Key())
		})
	}
}

func TestResolve(t *testing.T) {
	doc, err := Decode([]byte(batman))
	require.NoError(t, err)

	tests := []struct {
		key  string
		kind Kind
		text string
	}{
		{"name", KindText, "Batman"},
		{"id", KindNumber, "70"},
		{"powerstats.strength", KindNumber, "26"},
		{"appearance.height[1]", KindText, "188 cm"},
		{"appearance.weight.0", KindText, "210 lb"},
		{"appearance.hairColor", KindMissing, Unknown},
		{"appearance.eyeColor", KindMissing, Unknown},
		{"appearance.height[7]", KindMissing, Unknown},
		{"connections.groupAffiliation", KindMissing, Unknown},
		{"name.first", KindMissing, Unknown},
		{"flag", KindText, "true"},
		{"powerstats", KindComposite, `{"intelligence":100,"strength":26}`},
		{"biography.aliases", KindComposite, `["Bruce Wayne","Matches <Malone>"]`},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := ResolveKey(doc, tt.key)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.Text())
		})
	}
}

func TestResolveNilDocument(t *testing.T) {
	assert.True(t, Resolve(nil, Parse("name")).IsMissing())
}

func TestMissingIsDistinct(t *testing.T) {
	doc, err := Decode([]byte(`{"empty": "", "zero": 0}`))
	require.NoError(t, err)

	empty := ResolveKey(doc, "empty")
	zero := ResolveKey(doc, "zero")
	assert.False(t, empty.IsMissing())
	assert.False(t, zero.IsMissing())
	n, ok := zero.Number()
	assert.True(t, ok)
	assert.Zero(t, n)
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	_, err := Decode([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestNodeJSONKeepsOrder(t *testing.T) {
	doc, err := Decode([]byte(`{"z": 1, "a": [true, null, "x"]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":[true,null,"x"]}`, doc.JSON())
}
