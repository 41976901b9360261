package participants

import (
	"context"

	"github.com/de-tools/ternak-atlas/pkg/models/store"
)

// Store persists participant records keyed by their identifier.
// Implementations return store.ErrNotFound for unknown identifiers and
// store.ErrDuplicate when the NIK uniqueness constraint is violated.
type Store interface {
	Insert(ctx context.Context, p *store.Participant) error
	Get(ctx context.Context, id string) (*store.Participant, error)
	List(ctx context.Context) ([]*store.Participant, error)
	FindByNIK(ctx context.Context, nik string) (*store.Participant, error)
	Update(ctx context.Context, id string, patch store.ParticipantPatch) (*store.Participant, error)
	Delete(ctx context.Context, id string) error
}
