package domain

// Level is the provenance tier of a regulation.
type Level string

const (
	LevelFederal Level = "federal"
	LevelState   Level = "state"
	LevelLocal   Level = "local"
)

// Levels lists every known tier in display order.
func Levels() []Level {
	return []Level{LevelFederal, LevelState, LevelLocal}
}

// Valid reports whether the level names a known tier.
func (l Level) Valid() bool {
	switch l {
	case LevelFederal, LevelState, LevelLocal:
		return true
	}
	return false
}

// Regulation is the canonical, source-agnostic record persisted per document.
// FullText keeps the serialized raw payload for audit and later enrichment.
type Regulation struct {
	ID                 string
	Level              Level
	Title              string
	Description        string
	PublishedDate      string
	FullText           string
	SourceURL          string
	SourceLastModified string
	LastUpdated        string
}

// SourceRecord is a normalizer's output for one raw upstream item. Level and
// SourceURL are attached by the caller at store time.
type SourceRecord struct {
	ID                 string
	Title              string
	Description        string
	PublishedDate      string
	FullText           string
	SourceLastModified string
}

// Brief is the AI-derived compliance summary attached to one regulation.
// Written only by the enrichment pass, never by the ingestion pipeline.
type Brief struct {
	RegulationID   string
	BusinessImpact string
	ActionRequired string
	Penalty        string
	GeneratedAt    string
}
