// Package store persists definition documents so collections can be rebuilt
// from a shared source.
package store

import (
	"errors"
	"time"
)

// Format identifies the encoding of a stored document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a named definition document.
type Document struct {
	Name   string
	Format Format
	Data   []byte
}

// Store persists definition documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a document, replacing any document with the same name.
	// Each save increments the document's revision.
	Save(doc Document) error

	// Load retrieves a document.
	// Returns ErrNotFound if the document doesn't exist.
	Load(name string) (Document, error)

	// List returns metadata for all documents, ordered by name.
	// Returns an empty slice (not error) if the store is empty.
	List() ([]Info, error)

	// Delete removes a document.
	// Returns nil if the document doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the document body.
type Info struct {
	Name      string
	Format    Format
	Revision  int
	UpdatedAt time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a document doesn't exist.
	ErrNotFound = errors.New("document not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("document store closed")

	// ErrInvalidDocument indicates a document without a name or with an unknown format.
	ErrInvalidDocument = errors.New("invalid document")
)

func validate(doc Document) error {
	if doc.Name == "" {
		return errors.Join(ErrInvalidDocument, errors.New("name is required"))
	}
	switch doc.Format {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return errors.Join(ErrInvalidDocument, errors.New("unknown format "+string(doc.Format)))
	}
}
