package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"stockroom/internal/domain/transfer"
)

// AuditAction represents the type of audited operation.
type AuditAction string

const (
	AuditActionTransfer AuditAction = "transfer"
	AuditActionFulfill  AuditAction = "fulfill"
	AuditActionDelete   AuditAction = "delete"
	AuditActionUndelete AuditAction = "undelete"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID                string          `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          string          `db:"entity_id"`
	Action            AuditAction     `db:"action"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// AuditTrail records domain events for later inspection. Large
// payloads are stored zstd-compressed.
type AuditTrail struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes
}

// Compile-time checks against the domain recorder contracts.
var _ transfer.Recorder = (*AuditTrail)(nil)

// NewAuditTrail creates an audit trail.
func NewAuditTrail(txManager *TxManager) (*AuditTrail, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditTrail{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 1024,
	}, nil
}

// Close releases the compression codecs.
func (t *AuditTrail) Close() {
	_ = t.encoder.Close()
	t.decoder.Close()
}

// RecordTransfer writes an audit entry for a stock transfer.
func (t *AuditTrail) RecordTransfer(ctx context.Context, m transfer.Movement) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal movement: %w", err)
	}

	return t.log(ctx, AuditEntry{
		EntityType: "stock_line",
		EntityID:   fmt.Sprintf("%d/%d", m.SourceID, m.SKU),
		Action:     AuditActionTransfer,
		Payload:    payload,
	})
}

// RecordFulfillment writes an audit entry for an order fulfillment.
func (t *AuditTrail) RecordFulfillment(ctx context.Context, orderID int64) error {
	payload, err := json.Marshal(map[string]any{"orderId": orderID})
	if err != nil {
		return fmt.Errorf("marshal fulfillment: %w", err)
	}

	return t.log(ctx, AuditEntry{
		EntityType: "order",
		EntityID:   fmt.Sprintf("%d", orderID),
		Action:     AuditActionFulfill,
		Payload:    payload,
	})
}

// log records an audit entry.
func (t *AuditTrail) log(ctx context.Context, entry AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	entry.CompressionAlgo = CompressionNone
	if len(entry.Payload) > t.compressThreshold {
		entry.PayloadCompressed = t.encoder.EncodeAll(entry.Payload, nil)
		entry.Payload = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, action,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := t.txManager.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action,
		entry.Payload, entry.PayloadCompressed, entry.CompressionAlgo,
		entry.CreatedAt,
	)
	return err
}

// EntityHistory retrieves audit history for an entity, decompressing
// stored payloads.
func (t *AuditTrail) EntityHistory(ctx context.Context, entityType, entityID string, limit int) ([]AuditEntry, error) {
	sql := `
		SELECT id, entity_type, entity_id, action,
		       payload, payload_compressed, compression_algo, created_at
		FROM sys_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := t.txManager.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		err := rows.Scan(
			&e.ID, &e.EntityType, &e.EntityID, &e.Action,
			&e.Payload, &e.PayloadCompressed, &e.CompressionAlgo,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if e.CompressionAlgo == CompressionZstd && len(e.PayloadCompressed) > 0 {
			decompressed, err := t.decoder.DecodeAll(e.PayloadCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress payload: %w", err)
			}
			e.Payload = decompressed
			e.PayloadCompressed = nil
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
