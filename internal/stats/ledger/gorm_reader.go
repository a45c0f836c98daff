package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/haixin886/recharge-hub-system-sub001/internal/order/domain"
	statsdomain "github.com/haixin886/recharge-hub-system-sub001/internal/stats/domain"
	userdomain "github.com/haixin886/recharge-hub-system-sub001/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReaderParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

// GormReader implements Reader against the relational order store.
type GormReader struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReader(p ReaderParam) Reader {
	return &GormReader{
		db:  p.DB,
		log: p.Log.Named("stats.ledger"),
	}
}

func (r *GormReader) CountOrdersByStatus(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (statsdomain.OrderCounts, error) {
	var rows []struct {
		Status orderdomain.OrderStatus
		Count  int64
	}
	query := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select("status, COUNT(1) AS count").
		Where("create_time >= ? AND create_time < ?", w.Start, w.End).
		Group("status")
	if processorID != nil {
		query = query.Where("processor_id = ?", *processorID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return statsdomain.OrderCounts{}, r.unavailable("count_orders_by_status", err)
	}

	var counts statsdomain.OrderCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case orderdomain.OrderStatusPending:
			counts.Pending = row.Count
		case orderdomain.OrderStatusProcessing:
			counts.Processing = row.Count
		case orderdomain.OrderStatusCompleted:
			counts.Completed = row.Count
		case orderdomain.OrderStatusFailed:
			counts.Failed = row.Count
		}
	}
	return counts, nil
}

func (r *GormReader) CompletedSales(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select("COALESCE(SUM(COALESCE(paid_amount, 0)), 0)").
		Where("status = ?", orderdomain.OrderStatusCompleted).
		Where("complete_time >= ? AND complete_time < ?", w.Start, w.End)
	if processorID != nil {
		query = query.Where("processor_id = ?", *processorID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, r.unavailable("completed_sales", err)
	}
	return total, nil
}

// RefundTotal sums money returned on failed orders that had already
// been paid, keyed on create_time.
func (r *GormReader) RefundTotal(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select("COALESCE(SUM(COALESCE(paid_amount, 0)), 0)").
		Where("status = ?", orderdomain.OrderStatusFailed).
		Where("create_time >= ? AND create_time < ?", w.Start, w.End)
	if processorID != nil {
		query = query.Where("processor_id = ?", *processorID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, r.unavailable("refund_total", err)
	}
	return total, nil
}

// GrossProfit is paid amount minus catalog face value over completed
// orders, keyed on complete_time.
func (r *GormReader) GrossProfit(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).
		Table("orders o").
		Select("COALESCE(SUM(COALESCE(o.paid_amount, 0) - bt.face_value), 0)").
		Joins("JOIN business_types bt ON bt.id = o.product_id").
		Where("o.status = ?", orderdomain.OrderStatusCompleted).
		Where("o.complete_time >= ? AND o.complete_time < ?", w.Start, w.End)
	if processorID != nil {
		query = query.Where("o.processor_id = ?", *processorID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, r.unavailable("gross_profit", err)
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

func (r *GormReader) TotalUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userdomain.User{}).Count(&count).Error; err != nil {
		return 0, r.unavailable("total_users", err)
	}
	return count, nil
}

func (r *GormReader) NewUsers(ctx context.Context, w statsdomain.TimeWindow) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userdomain.User{}).
		Where("created_at >= ? AND created_at < ?", w.Start, w.End).
		Count(&count).Error
	if err != nil {
		return 0, r.unavailable("new_users", err)
	}
	return count, nil
}

// ActiveUsers counts distinct buyers with at least one order created
// inside the window.
func (r *GormReader) ActiveUsers(ctx context.Context, w statsdomain.TimeWindow) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Distinct("user_id").
		Where("create_time >= ? AND create_time < ?", w.Start, w.End).
		Count(&count).Error
	if err != nil {
		return 0, r.unavailable("active_users", err)
	}
	return count, nil
}

func (r *GormReader) AgentTotals(ctx context.Context, w statsdomain.TimeWindow) (AgentTotals, error) {
	var totals AgentTotals

	err := r.db.WithContext(ctx).Model(&userdomain.User{}).
		Where("role = ?", userdomain.RoleAgent).
		Count(&totals.Total).Error
	if err != nil {
		return AgentTotals{}, r.unavailable("agent_totals", err)
	}

	var row struct {
		Active     int64
		Revenue    int64
		Commission int64
	}
	err = r.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT o.processor_id) AS active,
		        COALESCE(SUM(COALESCE(o.paid_amount, 0)), 0) AS revenue,
		        COALESCE(SUM(COALESCE(o.paid_amount, 0) * u.commission_rate / 10000), 0) AS commission
		 FROM orders o
		 JOIN users u ON u.id = o.processor_id
		 WHERE o.status = ?
		   AND o.processor_id IS NOT NULL
		   AND o.complete_time >= ? AND o.complete_time < ?`,
		orderdomain.OrderStatusCompleted,
		w.Start,
		w.End,
	).Scan(&row).Error
	if err != nil {
		return AgentTotals{}, r.unavailable("agent_totals", err)
	}

	totals.Active = row.Active
	totals.Revenue = row.Revenue
	totals.Commission = row.Commission
	return totals, nil
}

// TopProducts groups completed sales by product, descending by sales
// sum with product id as the tiebreaker.
func (r *GormReader) TopProducts(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID, limit int) ([]statsdomain.ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []struct {
		ProductID snowflake.ID
		Name      string
		Sales     int64
		Orders    int64
	}
	query := r.db.WithContext(ctx).
		Table("orders o").
		Select(`o.product_id AS product_id, bt.name AS name,
		        COALESCE(SUM(COALESCE(o.paid_amount, 0)), 0) AS sales,
		        COUNT(1) AS orders`).
		Joins("JOIN business_types bt ON bt.id = o.product_id").
		Where("o.status = ?", orderdomain.OrderStatusCompleted).
		Where("o.complete_time >= ? AND o.complete_time < ?", w.Start, w.End).
		Group("o.product_id, bt.name").
		Order("sales DESC, product_id ASC").
		Limit(limit)
	if processorID != nil {
		query = query.Where("o.processor_id = ?", *processorID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, r.unavailable("top_products", err)
	}

	products := make([]statsdomain.ProductSales, 0, len(rows))
	for _, row := range rows {
		products = append(products, statsdomain.ProductSales{
			ProductID: row.ProductID.String(),
			Name:      row.Name,
			Sales:     row.Sales,
			Orders:    row.Orders,
		})
	}
	return products, nil
}

func (r *GormReader) MethodBreakdown(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) ([]statsdomain.MethodBreakdown, error) {
	var rows []statsdomain.MethodBreakdown
	query := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select(`payment_method AS method,
		        COALESCE(SUM(COALESCE(paid_amount, 0)), 0) AS sales,
		        COUNT(1) AS orders`).
		Where("create_time >= ? AND create_time < ?", w.Start, w.End).
		Group("payment_method").
		Order("payment_method ASC")
	if processorID != nil {
		query = query.Where("processor_id = ?", *processorID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, r.unavailable("method_breakdown", err)
	}
	return rows, nil
}

func (r *GormReader) CarrierBreakdown(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) ([]statsdomain.CarrierBreakdown, error) {
	var rows []statsdomain.CarrierBreakdown
	query := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select(`carrier,
		        COALESCE(SUM(COALESCE(paid_amount, 0)), 0) AS sales,
		        COUNT(1) AS orders`).
		Where("create_time >= ? AND create_time < ?", w.Start, w.End).
		Group("carrier").
		Order("carrier ASC")
	if processorID != nil {
		query = query.Where("processor_id = ?", *processorID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, r.unavailable("carrier_breakdown", err)
	}
	return rows, nil
}

// TrendRows projects the window's orders for client-side bucketing.
// Bucket math lives in the aggregator so the SQL stays portable across
// Postgres and the sqlite test driver.
func (r *GormReader) TrendRows(ctx context.Context, w statsdomain.TimeWindow, processorID *snowflake.ID) ([]TrendRow, error) {
	var rows []struct {
		CreateTime time.Time
		Status     orderdomain.OrderStatus
		Paid       int64
	}
	query := r.db.WithContext(ctx).Model(&orderdomain.Order{}).
		Select("create_time, status, COALESCE(paid_amount, 0) AS paid").
		Where("create_time >= ? AND create_time < ?", w.Start, w.End).
		Order("create_time ASC")
	if processorID != nil {
		query = query.Where("processor_id = ?", *processorID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, r.unavailable("trend_rows", err)
	}

	out := make([]TrendRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, TrendRow{
			CreateTime: row.CreateTime,
			Completed:  row.Status == orderdomain.OrderStatusCompleted,
			Paid:       row.Paid,
		})
	}
	return out, nil
}

func (r *GormReader) unavailable(metric string, err error) error {
	r.log.Warn("ledger read failed", zap.String("metric", metric), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", statsdomain.ErrLedgerUnavailable, metric, err)
}
