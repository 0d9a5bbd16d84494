package service

import (
	"time"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
)

// HistoryService tracks product views and derives recommendations from
// them. Views are recorded off the request path through the task queue.
type HistoryService struct {
	historyRepo repository.HistoryRepository
	productRepo repository.ProductRepository
	tasks       *queue.Client
}

// NewHistoryService creates a history service.
func NewHistoryService(historyRepo repository.HistoryRepository, productRepo repository.ProductRepository, tasks *queue.Client) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		productRepo: productRepo,
		tasks:       tasks,
	}
}

// RecordView enqueues a view event. Failures are logged and swallowed; a
// page view must never fail because history could not be written.
func (s *HistoryService) RecordView(userID, productID uint) {
	if userID == 0 || productID == 0 {
		return
	}
	task, err := queue.NewHistoryRecordTask(queue.HistoryRecordPayload{
		UserID:    userID,
		ProductID: productID,
		ViewedAt:  time.Now(),
	})
	if err != nil {
		logger.Warnw("history_task_build_failed", "user_id", userID, "product_id", productID, "error", err)
		return
	}
	if err := s.tasks.Enqueue(task); err != nil {
		logger.Warnw("history_task_enqueue_failed", "user_id", userID, "product_id", productID, "error", err)
	}
}

// SaveView writes a view row directly. Called by the worker when it
// consumes a history task.
func (s *HistoryService) SaveView(userID, productID uint, viewedAt time.Time) error {
	return s.historyRepo.UpsertView(userID, productID, viewedAt)
}

// ListRecent returns the caller's most recently viewed products.
func (s *HistoryService) ListRecent(userID uint, limit int) ([]models.BrowsingHistory, error) {
	return s.historyRepo.ListRecent(userID, limit)
}

// Clear removes the caller's entire history.
func (s *HistoryService) Clear(userID uint) error {
	return s.historyRepo.ClearByUser(userID)
}

// Recommendations returns products from the categories the caller viewed
// most recently, already-viewed products excluded.
func (s *HistoryService) Recommendations(userID uint, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	entries, err := s.historyRepo.ListRecent(userID, 10)
	if err != nil {
		return nil, err
	}

	viewed := make(map[uint]bool, len(entries))
	categories := make([]uint, 0, len(entries))
	seenCategory := make(map[uint]bool)
	for _, entry := range entries {
		viewed[entry.ProductID] = true
		if entry.Product != nil && !seenCategory[entry.Product.CategoryID] {
			seenCategory[entry.Product.CategoryID] = true
			categories = append(categories, entry.Product.CategoryID)
		}
	}

	out := make([]models.Product, 0, limit)
	for _, categoryID := range categories {
		candidates, err := s.productRepo.ListByCategory(categoryID, limit)
		if err != nil {
			return nil, err
		}
		for _, candidate := range candidates {
			if viewed[candidate.ID] {
				continue
			}
			out = append(out, candidate)
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}
