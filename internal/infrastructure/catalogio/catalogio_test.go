package catalogio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrops-br/storefront/internal/domain"
)

var catalog = []domain.Product{
	{
		ID: "1700000000001", Name: "Tee", Price: 19.99, Category: "Tops",
		Sizes: []string{"S", "M", "L"}, Images: []string{"https://cdn/tee-front.jpg", "https://cdn/tee-back.jpg"},
		Description: "Heavy cotton, boxy fit", InStock: true,
	},
	{
		ID: "1700000000002", Name: "Mug", Price: 9, Category: "Home",
		Sizes: []string{}, Images: []string{}, Description: "", InStock: false,
	},
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatCSV} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, catalog))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			if diff := cmp.Diff(catalog, got); diff != "" {
				t.Errorf("catalog mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONMatchesStorageLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, catalog[1:]))

	out := buf.String()
	assert.Contains(t, out, `"inStock"`)
	assert.Contains(t, out, `"description"`)
	assert.NotContains(t, out, "null")
}

func TestCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, catalog))

	header, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "id,name,price,category,sizes,images,description,inStock", header)
	assert.Contains(t, buf.String(), `"S, M, L"`)
}

func TestDecodeEmptyDocument(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		got, err := Decode(strings.NewReader(""), format)
		require.NoError(t, err, format)
		assert.Empty(t, got, format)
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("{oops"), FormatJSON)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]string{
		"catalog.json":     FormatJSON,
		"backup/shop.YAML": FormatYAML,
		"shop.yml":         FormatYAML,
		"export.csv":       FormatCSV,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("catalog.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestUnknownFormat(t *testing.T) {
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, "xml", catalog), ErrUnknownFormat)

	_, err := Decode(strings.NewReader(""), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
