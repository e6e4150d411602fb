// Package backend realizes the hosted document store consumed by the live
// stores: per-user collections delivering full-replace snapshots on every
// change, plus single-document mutations with server-assigned ids and
// instants.
package backend

import (
	"context"
	"errors"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
)

// ErrNotFound reports a mutation against a document that is not in the
// partition (already deleted, or owned by another user).
var ErrNotFound = errors.New("document not found")

// SnapshotFunc receives the full current contents of a collection partition.
type SnapshotFunc[T any] func([]T)

// FaultFunc receives a subscription fault. The subscription is dead after a
// fault; no redelivery happens until a new Subscribe call.
type FaultFunc func(error)

// ChamadoCollection is one user-partitioned chamados collection.
type ChamadoCollection interface {
	// Subscribe starts snapshot delivery for uid's partition. An initial
	// snapshot is delivered before change-driven ones. The returned func
	// stops delivery; it is safe to call more than once.
	Subscribe(ctx context.Context, uid string, onSnapshot SnapshotFunc[domain.Chamado], onFault FaultFunc) (cancel func())

	Add(ctx context.Context, uid string, chamado *domain.Chamado) error
	Update(ctx context.Context, uid, id string, patch repository.ChamadoPatch) error
	Complete(ctx context.Context, uid, id, resolucao string) error
	Delete(ctx context.Context, uid, id string) error
}

// ClienteCollection is one user-partitioned clientes collection.
type ClienteCollection interface {
	Subscribe(ctx context.Context, uid string, onSnapshot SnapshotFunc[domain.Cliente], onFault FaultFunc) (cancel func())

	Add(ctx context.Context, uid string, cliente *domain.Cliente) error
	Update(ctx context.Context, uid, id string, patch repository.ClientePatch) error
	Delete(ctx context.Context, uid, id string) error
}
