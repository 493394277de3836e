// Package catalogio reads and writes whole catalogs as JSON, YAML or CSV
// files for the export and import commands.
package catalogio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/mrops-br/storefront/internal/app/dto"
	"github.com/mrops-br/storefront/internal/domain"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnknownFormat is returned for formats other than json, yaml and csv
var ErrUnknownFormat = errors.New("unknown catalog format")

// csvRow flattens the list fields into comma separated cells, the same
// notation the admin form uses
type csvRow struct {
	ID          string  `csv:"id"`
	Name        string  `csv:"name"`
	Price       float64 `csv:"price"`
	Category    string  `csv:"category"`
	Sizes       string  `csv:"sizes"`
	Images      string  `csv:"images"`
	Description string  `csv:"description"`
	InStock     bool    `csv:"inStock"`
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: cannot infer from %q", ErrUnknownFormat, path)
	}
}

// Encode writes products to w in the given format
func Encode(w io.Writer, format string, products []domain.Product) error {
	records := dto.ToProductRecordList(products)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		rows := make([]csvRow, len(records))
		for i, r := range records {
			rows[i] = csvRow{
				ID:          r.ID,
				Name:        r.Name,
				Price:       r.Price,
				Category:    r.Category,
				Sizes:       strings.Join(r.Sizes, ", "),
				Images:      strings.Join(r.Images, ", "),
				Description: r.Description,
				InStock:     r.InStock,
			}
		}
		return gocsv.Marshal(rows, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode reads a catalog in the given format. An empty document is an empty
// catalog.
func Decode(r io.Reader, format string) ([]domain.Product, error) {
	var records []dto.ProductRecord

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	case FormatCSV:
		var rows []csvRow
		if err := gocsv.Unmarshal(r, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, fmt.Errorf("decode csv catalog: %w", err)
		}
		for _, row := range rows {
			records = append(records, dto.ProductRecord{
				ID:          row.ID,
				Name:        row.Name,
				Price:       row.Price,
				Category:    row.Category,
				Sizes:       dto.SplitList(row.Sizes),
				Images:      dto.SplitList(row.Images),
				Description: row.Description,
				InStock:     row.InStock,
			})
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return dto.ToDomainList(records), nil
}
