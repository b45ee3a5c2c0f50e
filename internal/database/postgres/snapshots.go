package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RelicWatch_Go/internal/database"
	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// SnapshotRepository persists reward snapshots and their priced slots
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a new PostgreSQL snapshot repository
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save stores the snapshot and every priced slot in one transaction and
// returns the snapshot row id. Unresolved slots are not stored; the slot
// count keeps the snapshot's width.
func (r *SnapshotRepository) Save(ctx context.Context, snap domain.RewardSnapshot) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO reward_snapshots (session_id, attempt, final, captured_at, slot_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		snap.SessionID, snap.Attempt, snap.Final, snap.CapturedAt, len(snap.RelicRewards),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertSnapshot, err)
	}

	batch := &pgx.Batch{}
	for slot, reward := range snap.RelicRewards {
		if reward == nil {
			continue
		}
		batch.Queue(`
			INSERT INTO reward_slots (snapshot_id, slot, item_id, item_name, set_id, ducats, price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, slot, reward.Item.ID, reward.Item.Name, reward.Item.SetID,
			int64(reward.Item.Ducats), int64(reward.Price))
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertSlots, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return id, nil
}

type snapshotHeader struct {
	id    int64
	width int
	snap  domain.RewardSnapshot
}

// Session returns every stored snapshot of a capture session in attempt order.
// Slots that were not stored come back as nil entries.
func (r *SnapshotRepository) Session(ctx context.Context, sessionID string) ([]domain.RewardSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, attempt, final, captured_at, slot_count
		FROM reward_snapshots
		WHERE session_id = $1
		ORDER BY attempt, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySnapshots, err)
	}

	var headers []snapshotHeader
	for rows.Next() {
		h := snapshotHeader{snap: domain.RewardSnapshot{SessionID: sessionID}}
		if err := rows.Scan(&h.id, &h.snap.Attempt, &h.snap.Final, &h.snap.CapturedAt, &h.width); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySnapshots, err)
		}
		headers = append(headers, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySnapshots, err)
	}

	out := make([]domain.RewardSnapshot, 0, len(headers))
	for _, h := range headers {
		if err := r.loadSlots(ctx, &h); err != nil {
			return nil, err
		}
		out = append(out, h.snap)
	}
	return out, nil
}

func (r *SnapshotRepository) loadSlots(ctx context.Context, h *snapshotHeader) error {
	h.snap.RelicRewards = make([]*domain.PricedItem, h.width)

	rows, err := r.db.Query(ctx, `
		SELECT slot, item_id, item_name, set_id, ducats, price
		FROM reward_slots
		WHERE snapshot_id = $1
		ORDER BY slot`, h.id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQuerySnapshots, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slot          int
			ducats, price int64
			p             domain.PricedItem
		)
		if err := rows.Scan(&slot, &p.Item.ID, &p.Item.Name, &p.Item.SetID, &ducats, &price); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToQuerySnapshots, err)
		}
		p.Item.Ducats = uint32(ducats)
		p.Price = uint32(price)
		if slot < 0 || slot >= len(h.snap.RelicRewards) {
			return fmt.Errorf("%s: slot %d of %d", ErrMsgSlotOutOfRange, slot, len(h.snap.RelicRewards))
		}
		h.snap.RelicRewards[slot] = &p
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToQuerySnapshots, err)
	}
	return nil
}
