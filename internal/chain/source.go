// Package chain reads events from the on-chain event registry, or from a
// service mirroring it, and tracks each read on the page session.
package chain

import (
	"context"
	"lummy/models"
)

// Source is the read-only event registry. GetEventDetails returns (nil, nil)
// when the registry has no record for the identifier.
type Source interface {
	ListEvents(ctx context.Context) ([]string, error)
	GetEventDetails(ctx context.Context, id string) (*models.EventDetails, error)
}
