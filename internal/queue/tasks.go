package queue

import (
	"encoding/json"
	"time"

	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

// Task type names.
const (
	TypeOrderPlaced   = "order:placed"
	TypeHistoryRecord = "history:record"
)

// OrderPlacedPayload is the payload of an order follow-up task.
type OrderPlacedPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  uint   `json:"user_id"`
}

// HistoryRecordPayload is the payload of a browsing-history write task.
type HistoryRecordPayload struct {
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}

// NewOrderPlacedTask builds an order follow-up task on the critical queue.
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOrderPlaced, b,
		asynq.Queue(constants.QueueCritical),
		asynq.MaxRetry(5),
	), nil
}

// NewHistoryRecordTask builds a browsing-history write task. History is
// best-effort, so retries stay low.
func NewHistoryRecordTask(payload HistoryRecordPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeHistoryRecord, b,
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(2),
	), nil
}
