package promotion

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/commerce-engine/model"
	txrepo "github.com/muhammadheryan/commerce-engine/repository/tx"
)

var (
	ErrDuplicateUsage = errors.New("promotion already used by order")
	ErrDuplicateCode  = errors.New("promotion code already exists")
)

type PromotionRepository interface {
	FindActive(ctx context.Context, now time.Time) ([]model.Promotion, error)
	FindByCode(ctx context.Context, code string) (*model.Promotion, error)
	FindByID(ctx context.Context, id uint64) (*model.Promotion, error)
	CustomerUsageCounts(ctx context.Context, email string, promotionIDs []uint64) (map[uint64]int, error)
	UpdateActive(ctx context.Context, id uint64, active bool) error
	UsageStats(ctx context.Context, id uint64) (*model.PromotionUsageStats, error)

	CreateTx(ctx context.Context, tx *sqlx.Tx, row *model.PromotionRow, rules []model.RuleRow) (uint64, error)
	GetByCodeForUpdateTx(ctx context.Context, tx *sqlx.Tx, code string) (*model.Promotion, error)
	GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Promotion, error)
	CustomerUsageCountTx(ctx context.Context, tx *sqlx.Tx, promotionID uint64, email string) (int, error)
	IncrementUsageTx(ctx context.Context, tx *sqlx.Tx, id uint64) (bool, error)
	InsertUsageTx(ctx context.Context, tx *sqlx.Tx, usage *model.PromotionUsage) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewPromotionRepository(conn *sqlx.DB) PromotionRepository {
	return &SQL{conn: conn}
}

const (
	promotionColumns = `id, code, name, description, discount_type, discount_value, max_discount_amount,
min_purchase_amount, is_active, is_stackable, priority, start_date, end_date, usage_limit, usage_count,
per_customer_limit, requires_coupon, target_segment, created_at`

	findActivePromotions = `SELECT ` + promotionColumns + ` FROM promotion
WHERE is_active = 1 AND start_date <= ? AND end_date > ? AND (usage_limit IS NULL OR usage_count < usage_limit)
ORDER BY priority DESC, id ASC`

	findPromotionByCode = `SELECT ` + promotionColumns + ` FROM promotion WHERE code = ?`
	findPromotionByID   = `SELECT ` + promotionColumns + ` FROM promotion WHERE id = ?`

	findRulesByPromotions = `SELECT id, promotion_id, rule_type, name, value FROM promotion_rule WHERE promotion_id IN (?) ORDER BY id`

	customerUsageCounts = `SELECT promotion_id, COUNT(*) AS uses FROM promotion_usage
WHERE customer_email = ? AND promotion_id IN (?) GROUP BY promotion_id`

	customerUsageCount = `SELECT COUNT(*) FROM promotion_usage WHERE promotion_id = ? AND customer_email = ?`

	insertPromotion = `INSERT INTO promotion (code, name, description, discount_type, discount_value, max_discount_amount,
min_purchase_amount, is_active, is_stackable, priority, start_date, end_date, usage_limit, usage_count,
per_customer_limit, requires_coupon, target_segment)
VALUES (:code, :name, :description, :discount_type, :discount_value, :max_discount_amount,
:min_purchase_amount, :is_active, :is_stackable, :priority, :start_date, :end_date, :usage_limit, :usage_count,
:per_customer_limit, :requires_coupon, :target_segment)`

	insertRule = `INSERT INTO promotion_rule (promotion_id, rule_type, name, value) VALUES (?, ?, ?, ?)`

	// The usage cap is re-checked by the UPDATE itself so two concurrent
	// applications can never push usage_count past usage_limit.
	incrementUsage = `UPDATE promotion SET usage_count = usage_count + 1
WHERE id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)`

	insertUsage = `INSERT INTO promotion_usage (promotion_id, order_id, customer_email, order_total, discount_amount, used_at)
VALUES (:promotion_id, :order_id, :customer_email, :order_total, :discount_amount, :used_at)`

	usageStats = `SELECT COUNT(*) AS usage_count, COUNT(DISTINCT customer_email) AS distinct_customers,
COALESCE(SUM(discount_amount), 0) AS total_discount, COALESCE(SUM(order_total), 0) AS total_order_value
FROM promotion_usage WHERE promotion_id = ?`
)

func (r *SQL) FindActive(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	rows := make([]model.PromotionRow, 0)
	if err := r.conn.SelectContext(ctx, &rows, findActivePromotions, now, now); err != nil {
		return nil, err
	}
	return r.withRules(ctx, r.conn, rows)
}

func (r *SQL) FindByCode(ctx context.Context, code string) (*model.Promotion, error) {
	return r.getOne(ctx, r.conn, findPromotionByCode, model.NormalizeCode(code))
}

func (r *SQL) FindByID(ctx context.Context, id uint64) (*model.Promotion, error) {
	return r.getOne(ctx, r.conn, findPromotionByID, id)
}

func (r *SQL) GetByCodeForUpdateTx(ctx context.Context, tx *sqlx.Tx, code string) (*model.Promotion, error) {
	return r.getOne(ctx, tx, findPromotionByCode+" FOR UPDATE", model.NormalizeCode(code))
}

func (r *SQL) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.Promotion, error) {
	return r.getOne(ctx, tx, findPromotionByID+" FOR UPDATE", id)
}

// getOne returns nil, nil when no promotion matches.
func (r *SQL) getOne(ctx context.Context, q sqlx.ExtContext, query string, arg any) (*model.Promotion, error) {
	var row model.PromotionRow
	if err := sqlx.GetContext(ctx, q, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	promotions, err := r.withRules(ctx, q, []model.PromotionRow{row})
	if err != nil {
		return nil, err
	}
	return &promotions[0], nil
}

func (r *SQL) withRules(ctx context.Context, q sqlx.ExtContext, rows []model.PromotionRow) ([]model.Promotion, error) {
	if len(rows) == 0 {
		return []model.Promotion{}, nil
	}
	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	query, args, err := sqlx.In(findRulesByPromotions, ids)
	if err != nil {
		return nil, err
	}
	ruleRows := make([]model.RuleRow, 0)
	if err := sqlx.SelectContext(ctx, q, &ruleRows, q.Rebind(query), args...); err != nil {
		return nil, err
	}

	promotions := make([]model.Promotion, 0, len(rows))
	for _, row := range rows {
		p, err := model.NewPromotion(row, ruleRows)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}

func (r *SQL) CustomerUsageCounts(ctx context.Context, email string, promotionIDs []uint64) (map[uint64]int, error) {
	counts := make(map[uint64]int, len(promotionIDs))
	if email == "" || len(promotionIDs) == 0 {
		return counts, nil
	}

	query, args, err := sqlx.In(customerUsageCounts, email, promotionIDs)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		PromotionID uint64 `db:"promotion_id"`
		Uses        int    `db:"uses"`
	}
	if err := r.conn.SelectContext(ctx, &rows, r.conn.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PromotionID] = row.Uses
	}
	return counts, nil
}

func (r *SQL) CustomerUsageCountTx(ctx context.Context, tx *sqlx.Tx, promotionID uint64, email string) (int, error) {
	if email == "" {
		return 0, nil
	}
	var count int
	if err := tx.GetContext(ctx, &count, customerUsageCount, promotionID, email); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateActive returns sql.ErrNoRows when the promotion does not exist.
func (r *SQL) UpdateActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.conn.ExecContext(ctx, "UPDATE promotion SET is_active = ? WHERE id = ?", active, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.conn.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM promotion WHERE id = ?)", id); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
	}
	return nil
}

func (r *SQL) UsageStats(ctx context.Context, id uint64) (*model.PromotionUsageStats, error) {
	var stats model.PromotionUsageStats
	if err := r.conn.GetContext(ctx, &stats, usageStats, id); err != nil {
		return nil, err
	}
	stats.PromotionID = id
	return &stats, nil
}

func (r *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, row *model.PromotionRow, rules []model.RuleRow) (uint64, error) {
	res, err := tx.NamedExecContext(ctx, insertPromotion, row)
	if err != nil {
		if txrepo.IsDuplicateKey(err) {
			return 0, ErrDuplicateCode
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, rule := range rules {
		if _, err := tx.ExecContext(ctx, insertRule, id, rule.RuleType, rule.Name, rule.Value); err != nil {
			return 0, err
		}
	}
	return uint64(id), nil
}

// IncrementUsageTx reports false when the usage cap was already reached.
func (r *SQL) IncrementUsageTx(ctx context.Context, tx *sqlx.Tx, id uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, incrementUsage, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *SQL) InsertUsageTx(ctx context.Context, tx *sqlx.Tx, usage *model.PromotionUsage) error {
	if _, err := tx.NamedExecContext(ctx, insertUsage, usage); err != nil {
		if txrepo.IsDuplicateKey(err) {
			return ErrDuplicateUsage
		}
		return err
	}
	return nil
}
