package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pridenomad-hub/internal/domain/billing"
	apperr "pridenomad-hub/internal/pkg/errors"
)

type paymentsRepo struct {
	db *gorm.DB
}

func (r paymentsRepo) Create(ctx context.Context, p *billing.Payment) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(p).Error, "payment", "record payment")
}

func (r paymentsRepo) ListByUser(ctx context.Context, userID string) ([]billing.Payment, error) {
	var out []billing.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&out).Error
	if err != nil {
		return nil, apperr.RemoteService("list payments", err)
	}
	return out, nil
}

func (r paymentsRepo) List(ctx context.Context, limit, offset int) ([]billing.Payment, error) {
	var out []billing.Payment
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(billing.PaymentPageSize(limit)).
		Offset(max(offset, 0)).
		Find(&out).Error
	if err != nil {
		return nil, apperr.RemoteService("list payments", err)
	}
	return out, nil
}

func (r paymentsRepo) Stats(ctx context.Context, since time.Time) (*billing.PaymentStats, error) {
	var rows []struct {
		PlanID  string
		Count   int64
		Revenue float64
	}
	err := r.db.WithContext(ctx).Model(&billing.Payment{}).
		Select("plan_id, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS revenue").
		Group("plan_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.RemoteService("aggregate payments", err)
	}

	stats := &billing.PaymentStats{PerPlan: make(map[string]int64, len(rows))}
	for _, row := range rows {
		stats.Count += row.Count
		stats.Revenue += row.Revenue
		stats.PerPlan[row.PlanID] = row.Count
	}

	err = r.db.WithContext(ctx).Model(&billing.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("timestamp >= ?", since).
		Scan(&stats.RecentRevenue).Error
	if err != nil {
		return nil, apperr.RemoteService("aggregate payments", err)
	}
	return stats, nil
}
