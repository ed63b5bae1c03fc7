package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redisclient "github.com/muhammadheryan/commerce-engine/cmd/redis"
	"github.com/muhammadheryan/commerce-engine/model"
	goredis "github.com/redis/go-redis/v9"
)

const activePromotionsKey = "promotion:active"

// Repository caches the active promotion set between pricing calls.
type Repository interface {
	GetActivePromotions(ctx context.Context) ([]model.Promotion, bool, error)
	SetActivePromotions(ctx context.Context, promotions []model.Promotion, ttl time.Duration) error
	InvalidateActivePromotions(ctx context.Context) error
}

type redis struct {
	client func() *goredis.Client
}

// NewRepository returns a Redis Repository backed by the shared client. All
// methods are no-ops while the client is not initialized.
func NewRepository() Repository {
	return &redis{client: redisclient.Get}
}

// GetActivePromotions reports false on a cache miss.
func (r *redis) GetActivePromotions(ctx context.Context) ([]model.Promotion, bool, error) {
	client := r.client()
	if client == nil {
		return nil, false, nil
	}
	val, err := client.Get(ctx, activePromotionsKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var promotions []model.Promotion
	if err := json.Unmarshal(val, &promotions); err != nil {
		return nil, false, err
	}
	return promotions, true, nil
}

func (r *redis) SetActivePromotions(ctx context.Context, promotions []model.Promotion, ttl time.Duration) error {
	client := r.client()
	if client == nil || ttl <= 0 {
		return nil
	}
	val, err := json.Marshal(promotions)
	if err != nil {
		return err
	}
	return client.Set(ctx, activePromotionsKey, val, ttl).Err()
}

func (r *redis) InvalidateActivePromotions(ctx context.Context) error {
	client := r.client()
	if client == nil {
		return nil
	}
	return client.Del(ctx, activePromotionsKey).Err()
}
