package description

import "time"

// ListKind selects one of the per-session lists.
type ListKind string

const (
	// ListHistory holds the raw inputs that produced a description.
	ListHistory ListKind = "history"
	// ListSaved holds descriptions the user chose to keep.
	ListSaved ListKind = "saved"
)

// Valid reports whether the kind names a known list.
func (k ListKind) Valid() bool {
	return k == ListHistory || k == ListSaved
}

// EditOp names an attribute editor operation.
type EditOp string

const (
	// EditOpMove reorders one attribute.
	EditOpMove EditOp = "move"
	// EditOpEdit replaces one attribute.
	EditOpEdit EditOp = "edit"
	// EditOpDelete removes one attribute.
	EditOpDelete EditOp = "delete"
)

// Entry is one item of a session list.
type Entry struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeRequest carries free text to normalize.
type NormalizeRequest struct {
	Text string `json:"text"`
}

// NormalizeResponse lists the candidate descriptions, at most one today.
type NormalizeResponse struct {
	Descriptions []string `json:"descriptions"`
}

// GenerateRequest normalizes text on behalf of a session.
type GenerateRequest struct {
	SessionID string `json:"-"`
	Text      string `json:"text"`
}

// GenerateResponse reports the generated description and the session history.
type GenerateResponse struct {
	Generated   bool     `json:"generated"`
	Description string   `json:"description,omitempty"`
	Attributes  []string `json:"attributes,omitempty"`
	History     []Entry  `json:"history"`
}

// SaveRequest stores text in the session saved list.
type SaveRequest struct {
	SessionID string `json:"-"`
	Text      string `json:"text"`
}

// AttributeEditRequest describes one change to a description's attributes.
type AttributeEditRequest struct {
	Description string `json:"description"`
	Op          EditOp `json:"op"`
	Index       int    `json:"index"`
	Target      int    `json:"target"`
	Value       string `json:"value"`
}

// AttributeEditResponse is the edited description.
type AttributeEditResponse struct {
	Description string   `json:"description"`
	Attributes  []string `json:"attributes"`
}
