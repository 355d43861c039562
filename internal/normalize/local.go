package normalize

import (
	"fmt"

	"RegRadar/internal/domain"
)

// Local normalizes Socrata rows from the NYC Open Data regulatory-notices
// resource. Rows are flat mappings; the id is a composite of namespace,
// issuing agency and rule number.
func Local(items []map[string]any) []domain.SourceRecord {
	records := make([]domain.SourceRecord, 0, len(items))
	for _, item := range items {
		agency := str(item, "agency")
		ruleNo := firstOf(item, "rule_id", "id")

		published := firstOf(item, "effective_date", "published_date")
		modified := str(item, "updated_at")
		if modified == "" {
			modified = published
		}

		records = append(records, domain.SourceRecord{
			ID:                 fmt.Sprintf("nyc-%s-%s", agency, ruleNo),
			Title:              firstOf(item, "rule_title", "title"),
			Description:        firstOf(item, "summary", "description"),
			PublishedDate:      published,
			FullText:           serialize(item),
			SourceLastModified: modified,
		})
	}
	return records
}
