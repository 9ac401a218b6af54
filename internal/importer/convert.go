package importer

import (
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
)

const defaultHours = 1.0

// Convert turns a validated schema into catalog modules, in file order.
// Spreadsheet exports often write a missing notebook link as "nan"; it is
// stored as empty.
func Convert(schema *CatalogSchema) []domain.CatalogModule {
	out := make([]domain.CatalogModule, 0, len(schema.Modules))
	for i, m := range schema.Modules {
		hours := defaultHours
		if m.Hours != nil {
			hours = *m.Hours
		}
		link := strings.TrimSpace(m.ColabLink)
		if strings.EqualFold(link, "nan") {
			link = ""
		}
		out = append(out, domain.CatalogModule{
			Position:  i,
			Course:    strings.TrimSpace(m.Course),
			Module:    strings.TrimSpace(m.Module),
			Topics:    strings.TrimSpace(m.Topics),
			ColabLink: link,
			Hours:     hours,
		})
	}
	return out
}
