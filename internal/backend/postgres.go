package backend

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/chamados-dashboard/internal/domain"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
)

// Postgres-backed collections. Rows live in per-user partitions of the
// chamados/clientes tables; change pushes ride a Redis pub/sub channel per
// partition. Every push triggers a full re-list, so subscribers always see
// full-replace snapshots.

type chamadoBackend struct {
	repo   repository.ChamadoRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewChamadoCollection builds the live chamados collection.
func NewChamadoCollection(repo repository.ChamadoRepository, client *redis.Client, logger *zap.Logger) ChamadoCollection {
	return &chamadoBackend{repo: repo, redis: client, logger: logger}
}

func (b *chamadoBackend) Subscribe(ctx context.Context, uid string, onSnapshot SnapshotFunc[domain.Chamado], onFault FaultFunc) func() {
	subCtx, cancelCtx := context.WithCancel(ctx)
	pubsub := b.redis.Subscribe(subCtx, chamadoChannel(uid))

	go runListener(subCtx, pubsub, func(c context.Context) ([]domain.Chamado, error) {
		return b.repo.ListByUser(c, uid)
	}, onSnapshot, onFault)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelCtx()
			_ = pubsub.Close()
		})
	}
}

func (b *chamadoBackend) Add(ctx context.Context, uid string, chamado *domain.Chamado) error {
	if err := b.repo.Create(ctx, uid, chamado); err != nil {
		return mapRepoErr(err)
	}
	b.notify(ctx, chamadoChannel(uid))
	return nil
}

func (b *chamadoBackend) Update(ctx context.Context, uid, id string, patch repository.ChamadoPatch) error {
	if err := b.repo.Update(ctx, uid, id, patch); err != nil {
		return mapRepoErr(err)
	}
	b.notify(ctx, chamadoChannel(uid))
	return nil
}

func (b *chamadoBackend) Complete(ctx context.Context, uid, id, resolucao string) error {
	if err := b.repo.Complete(ctx, uid, id, resolucao); err != nil {
		return mapRepoErr(err)
	}
	b.notify(ctx, chamadoChannel(uid))
	return nil
}

func (b *chamadoBackend) Delete(ctx context.Context, uid, id string) error {
	if err := b.repo.Delete(ctx, uid, id); err != nil {
		return mapRepoErr(err)
	}
	b.notify(ctx, chamadoChannel(uid))
	return nil
}

func (b *chamadoBackend) notify(ctx context.Context, channel string) {
	if err := b.redis.Publish(ctx, channel, "sync").Err(); err != nil {
		// the write itself succeeded; listeners catch up on the next push
		b.logger.Warn("change notification failed", zap.String("channel", channel), zap.Error(err))
	}
}

type clienteBackend struct {
	repo   repository.ClienteRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewClienteCollection builds the live clientes collection.
func NewClienteCollection(repo repository.ClienteRepository, client *redis.Client, logger *zap.Logger) ClienteCollection {
	return &clienteBackend{repo: repo, redis: client, logger: logger}
}

func (b *clienteBackend) Subscribe(ctx context.Context, uid string, onSnapshot SnapshotFunc[domain.Cliente], onFault FaultFunc) func() {
	subCtx, cancelCtx := context.WithCancel(ctx)
	pubsub := b.redis.Subscribe(subCtx, clienteChannel(uid))

	go runListener(subCtx, pubsub, func(c context.Context) ([]domain.Cliente, error) {
		return b.repo.ListByUser(c, uid)
	}, onSnapshot, onFault)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelCtx()
			_ = pubsub.Close()
		})
	}
}

func (b *clienteBackend) Add(ctx context.Context, uid string, cliente *domain.Cliente) error {
	if err := b.repo.Create(ctx, uid, cliente); err != nil {
		return mapRepoErr(err)
	}
	b.notify(ctx, clienteChannel(uid))
	return nil
}

func (b *clienteBackend) Update(ctx context.Context, uid, id string, patch repository.ClientePatch) error {
	if err := b.repo.Update(ctx, uid, id, patch); err != nil {
		return mapRepoErr(err)
	}
	b.notify(ctx, clienteChannel(uid))
	return nil
}

func (b *clienteBackend) Delete(ctx context.Context, uid, id string) error {
	if err := b.repo.Delete(ctx, uid, id); err != nil {
		return mapRepoErr(err)
	}
	b.notify(ctx, clienteChannel(uid))
	return nil
}

func (b *clienteBackend) notify(ctx context.Context, channel string) {
	if err := b.redis.Publish(ctx, channel, "sync").Err(); err != nil {
		b.logger.Warn("change notification failed", zap.String("channel", channel), zap.Error(err))
	}
}

func mapRepoErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func chamadoChannel(uid string) string {
	return "users:" + uid + ":chamados"
}

func clienteChannel(uid string) string {
	return "users:" + uid + ":clientes"
}

// runListener delivers the initial snapshot, then re-lists on every change
// push. A list failure or closed feed is a terminal fault for this
// subscription; cancellation exits silently.
func runListener[T any](ctx context.Context, pubsub *redis.PubSub, list func(context.Context) ([]T, error), onSnapshot SnapshotFunc[T], onFault FaultFunc) {
	deliver := func() bool {
		items, err := list(ctx)
		if err != nil {
			if ctx.Err() == nil {
				onFault(err)
			}
			return false
		}
		onSnapshot(items)
		return true
	}

	if !deliver() {
		return
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				if ctx.Err() == nil {
					onFault(errors.New("change feed closed"))
				}
				return
			}
			if !deliver() {
				return
			}
		}
	}
}
