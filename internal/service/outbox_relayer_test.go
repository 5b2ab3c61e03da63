package service

import (
	"context"
	"errors"
	"testing"

	"Orbit_Community/internal/model"
)

type memOutbox struct {
	rows map[uint64]*model.MembershipOutbox
}

func newMemOutbox(rows ...*model.MembershipOutbox) *memOutbox {
	m := &memOutbox{rows: make(map[uint64]*model.MembershipOutbox)}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (m *memOutbox) List(ctx context.Context, batchSize int) ([]model.MembershipOutbox, error) {
	var list []model.MembershipOutbox
	for _, r := range m.rows {
		if r.Status == 0 {
			list = append(list, *r)
		}
		if len(list) >= batchSize {
			break
		}
	}
	return list, nil
}

func (m *memOutbox) RetryUpdate(ctx context.Context, id uint64) error {
	m.rows[id].Status = 2
	m.rows[id].Retry++
	return nil
}

func (m *memOutbox) SuccessUpdate(ctx context.Context, id uint64) error {
	m.rows[id].Status = 1
	return nil
}

func TestOutboxRelayer_Drain(t *testing.T) {
	repo := newMemOutbox(
		&model.MembershipOutbox{ID: 1, EventType: "member_added", ScopeType: "community", ScopeID: 10, UserID: 7},
		&model.MembershipOutbox{ID: 2, EventType: "member_removed", ScopeType: "group", ScopeID: 20, UserID: 8},
	)
	var sent []uint64
	relayer := NewOutboxRelayer(repo, func(ctx context.Context, ob *model.MembershipOutbox) error {
		sent = append(sent, ob.ID)
		return nil
	})

	relayer.drainOnce(context.Background())

	if len(sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(sent))
	}
	for id, row := range repo.rows {
		if row.Status != 1 {
			t.Errorf("row %d not marked success, status=%d", id, row.Status)
		}
	}
}

func TestOutboxRelayer_SendFailureMarksRetry(t *testing.T) {
	repo := newMemOutbox(
		&model.MembershipOutbox{ID: 1, EventType: "member_added", ScopeType: "community", ScopeID: 10, UserID: 7},
	)
	relayer := NewOutboxRelayer(repo, func(ctx context.Context, ob *model.MembershipOutbox) error {
		return errors.New("broker down")
	})

	relayer.drainOnce(context.Background())

	row := repo.rows[1]
	if row.Status != 2 {
		t.Errorf("expected retry status 2, got %d", row.Status)
	}
	if row.Retry != 1 {
		t.Errorf("expected retry count 1, got %d", row.Retry)
	}
}
