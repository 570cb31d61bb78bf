package backend

import (
	"context"

	"github.com/portfolio/internal/realtime"
)

type notifyingRepository[R any] struct {
	Repository[R]
	hub   *realtime.Hub
	table string
	id    func(R) string
}

// Notifying wraps repo so every successful mutation publishes a change event for table.
func Notifying[R any](repo Repository[R], hub *realtime.Hub, table string, id func(R) string) Repository[R] {
	return &notifyingRepository[R]{Repository: repo, hub: hub, table: table, id: id}
}

func (n *notifyingRepository[R]) Insert(ctx context.Context, row R) (R, error) {
	stored, err := n.Repository.Insert(ctx, row)
	if err != nil {
		return stored, err
	}
	n.hub.Publish(realtime.Event{Type: realtime.EventInsert, Table: n.table, RecordID: n.id(stored)})
	return stored, nil
}

func (n *notifyingRepository[R]) Update(ctx context.Context, id string, row R) (R, error) {
	stored, err := n.Repository.Update(ctx, id, row)
	if err != nil {
		return stored, err
	}
	n.hub.Publish(realtime.Event{Type: realtime.EventUpdate, Table: n.table, RecordID: id})
	return stored, nil
}

func (n *notifyingRepository[R]) Delete(ctx context.Context, id string) error {
	if err := n.Repository.Delete(ctx, id); err != nil {
		return err
	}
	n.hub.Publish(realtime.Event{Type: realtime.EventDelete, Table: n.table, RecordID: id})
	return nil
}
