package domain

import "time"

// BasicInfo holds the identity fields recovered from CV text.
// Each field is independent; an empty string means "not found".
type BasicInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// IsEmpty returns true if no field was recovered.
func (b BasicInfo) IsEmpty() bool {
	return b.Name == "" && b.Email == "" && b.Phone == ""
}

// ParsedCV is the output of the parsing pipeline.
type ParsedCV struct {
	// Text is the normalised document text.
	Text string `json:"text"`

	// BasicInfo is the heuristically recovered identity.
	BasicInfo BasicInfo `json:"basic_info"`

	// DocumentType is the decoder family that produced Text.
	DocumentType DocumentType `json:"document_type"`

	// Degraded is true when Text is a placeholder rather than decoded content.
	Degraded bool `json:"degraded,omitempty"`

	// ContentHash is the hex SHA-256 of the source bytes.
	ContentHash string `json:"content_hash"`
}

// Analysis is the output of an LLM review of a CV.
type Analysis struct {
	// Summary is the reviewer's feedback text.
	Summary string `json:"summary"`

	// Model names the model that produced the summary.
	Model string `json:"model"`

	// CreatedAt is when the analysis was produced.
	CreatedAt time.Time `json:"created_at"`
}

// CV is a parsed CV as persisted by a CVStore.
type CV struct {
	ID           string       `json:"id"`
	Filename     string       `json:"filename"`
	MIMEType     string       `json:"mime_type"`
	Size         int64        `json:"size"`
	ContentHash  string       `json:"content_hash"`
	DocumentType DocumentType `json:"document_type"`
	Text         string       `json:"text"`
	BasicInfo    BasicInfo    `json:"basic_info"`
	Degraded     bool         `json:"degraded,omitempty"`
	Analysis     *Analysis    `json:"analysis,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
