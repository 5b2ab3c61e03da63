package service

import (
	"context"
	"log/slog"
	"time"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
)

type Sender func(ctx context.Context, ob *model.MembershipOutbox) error

// OutboxRelayer 轮询 membership_outbox，把成员变更事件异步投递出去
type OutboxRelayer struct {
	repo      OutboxStore
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(repo OutboxStore, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		slog.Error("outbox query failed", "err", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 按 scope_id 分区投递
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.MembershipOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.ScopeID), []byte(ob.Payload))
	}
}

// LogSender 本地调试用
func LogSender(ctx context.Context, ob *model.MembershipOutbox) error {
	slog.Info("outbox send", "type", ob.EventType, "scope", ob.ScopeType, "scope_id", ob.ScopeID, "user_id", ob.UserID)
	return nil
}
