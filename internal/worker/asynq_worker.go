package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles background tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TypeOrderPlaced, c.handleOrderPlaced)
	mux.HandleFunc(queue.TypeHistoryRecord, c.handleHistoryRecord)
}

// handleOrderPlaced runs post-checkout follow-up: it verifies the order
// landed and logs the placement for downstream tooling.
func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	var payload queue.OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload")
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	logger.Infow("worker_order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total", order.TotalAmount.String(),
		"items", len(order.Items),
	)
	return nil
}

// handleHistoryRecord writes one browsing-history row.
func (c *Consumer) handleHistoryRecord(_ context.Context, task *asynq.Task) error {
	var payload queue.HistoryRecordPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_history_record_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.ProductID == 0 {
		logger.Debugw("worker_history_record_skip_invalid_payload",
			"user_id", payload.UserID,
			"product_id", payload.ProductID,
		)
		return nil
	}
	viewedAt := payload.ViewedAt
	if viewedAt.IsZero() {
		viewedAt = time.Now()
	}
	if err := c.HistoryService.SaveView(payload.UserID, payload.ProductID, viewedAt); err != nil {
		logger.Warnw("worker_history_record_save_failed",
			"user_id", payload.UserID,
			"product_id", payload.ProductID,
			"error", err,
		)
		return err
	}
	return nil
}
