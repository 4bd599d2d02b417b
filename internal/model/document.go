package model

import "time"

// DocumentKind identifies a letter template.
type DocumentKind string

const (
	DocumentLBA1             DocumentKind = "LBA1"
	DocumentLBA2             DocumentKind = "LBA2"
	DocumentMortgageeLetter1 DocumentKind = "MORTGAGEE_LETTER1"
)

// DocumentRecord logs the fact that a document was generated for a case.
// The rendered content itself is not persisted.
type DocumentRecord struct {
	ID           int64        `json:"id" db:"id"`
	CaseID       int64        `json:"case_id" db:"case_id"`
	DocumentType DocumentKind `json:"document_type" db:"document_type"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// GeneratedDocument is the response for a document generation request.
type GeneratedDocument struct {
	DocumentType DocumentKind `json:"documentType"`
	Content      string       `json:"content"`
}
