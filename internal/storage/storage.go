// Package storage archives generated documents in object storage.
package storage

import (
	"context"
	"io"
)

// Storage saves objects by key. Archived proposals are write-once.
type Storage interface {
	// Save stores data under key (e.g. "proposals/<id>.pdf") and returns its location.
	Save(ctx context.Context, key string, data io.ReadSeeker, contentType string) (location string, err error)
}

// ProposalKey is the archive key of a proposal PDF.
func ProposalKey(proposalID string) string {
	return "proposals/" + proposalID + ".pdf"
}
