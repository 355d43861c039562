package normalize

import (
	"fmt"
	"strings"

	"RegRadar/internal/domain"
)

// State normalizes bill search results from the NYS Open Legislation API.
// Bills have no single natural key, so the id is a composite of namespace,
// session and base print number: two hits for the same evolving bill collapse
// to one canonical record.
func State(items []map[string]any) []domain.SourceRecord {
	records := make([]domain.SourceRecord, 0, len(items))
	for _, item := range items {
		bill := nested(item, "result")

		printNo := str(bill, "basePrintNo")
		session := scalar(bill, "session")
		// status may arrive as a plain string in older API responses
		actionDate := str(nested(bill, "status"), "actionDate")

		records = append(records, domain.SourceRecord{
			ID:                 fmt.Sprintf("nys-%s-%s", session, printNo),
			Title:              strings.TrimSpace(fmt.Sprintf("%s: %s", printNo, str(bill, "title"))),
			Description:        str(bill, "summary"),
			PublishedDate:      actionDate,
			FullText:           serialize(bill),
			SourceLastModified: actionDate,
		})
	}
	return records
}
