package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers recognised in a spreadsheet catalog, matched
// case-insensitively.
const (
	colCourse = "course"
	colModule = "module"
	colTopics = "topics"
	colColab  = "colab_link"
	colHours  = "hours"
)

// ParseCatalogXLSX reads the first sheet of a workbook. The first row is
// the header; Course, Module and Topics are required columns.
func ParseCatalogXLSX(r io.Reader) (*CatalogSchema, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyCatalog
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCatalog
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "colab link" {
			key = colColab
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	for _, required := range []string{colCourse, colModule, colTopics} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	schema := &CatalogSchema{}
	for n, row := range rows[1:] {
		m := ModuleImport{
			Course:    cell(row, colCourse),
			Module:    cell(row, colModule),
			Topics:    cell(row, colTopics),
			ColabLink: cell(row, colColab),
		}
		if m.Course == "" && m.Module == "" && m.Topics == "" {
			continue
		}
		if raw := cell(row, colHours); raw != "" {
			h, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: hours %q: %w", n+2, raw, err)
			}
			m.Hours = &h
		}
		schema.Modules = append(schema.Modules, m)
	}
	return schema, nil
}
