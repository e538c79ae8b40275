package model

import "time"

// Revision represents one uploaded state of the tracked document together
// with the text extracted from it. It is a pure domain model with no
// database-specific dependencies or tags, usable across layers (HTTP,
// service, storage) without coupling to persistence.
//
// IDs are allocated by the database as part of the insert, so they are
// unique and strictly increasing in creation order. ExtractedText is set
// once at creation and never changes; Memo is the only mutable field.
type Revision struct {
	ID            int64     `json:"id"`
	StoragePath   string    `json:"-"`
	DisplayName   string    `json:"display_name"`
	ExtractedText string    `json:"extracted_text"`
	Memo          *string   `json:"memo"`
	CreatedAt     time.Time `json:"created_at"`
}

// RevisionSummary is the listing view of a Revision: everything except the
// extracted text, which can be large and is only needed when inspecting or
// diffing a single revision.
type RevisionSummary struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	Memo        *string   `json:"memo"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary projects a full Revision down to its summary view.
func (r *Revision) Summary() RevisionSummary {
	return RevisionSummary{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		Memo:        r.Memo,
		CreatedAt:   r.CreatedAt,
	}
}
