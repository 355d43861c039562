package normalize

import "RegRadar/internal/domain"

// Federal normalizes JSON:API documents from Regulations.gov v4. Fields live
// under an "attributes" envelope; the item-level id is a fallback only.
func Federal(items []map[string]any) []domain.SourceRecord {
	records := make([]domain.SourceRecord, 0, len(items))
	for _, item := range items {
		attrs := nested(item, "attributes")

		id := str(attrs, "documentId")
		if id == "" {
			id = str(item, "id")
		}

		records = append(records, domain.SourceRecord{
			ID:                 id,
			Title:              str(attrs, "title"),
			Description:        firstOf(attrs, "summary", "abstract"),
			PublishedDate:      str(attrs, "postedDate"),
			FullText:           serialize(attrs),
			SourceLastModified: firstOf(attrs, "lastModifiedDate", "postedDate"),
		})
	}
	return records
}
