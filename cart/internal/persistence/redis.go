package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inOtel "github.com/foodie-app/foodie/cart/internal/otel"
	"github.com/foodie-app/foodie/cart/pkg/cart"
	commonErrors "github.com/foodie-app/foodie/internal/errors"
	"github.com/foodie-app/foodie/internal/log"
)

const keyCartSnapshot = "carts:user:%s"

// RedisPort persists cart snapshots as JSON values keyed by user id.
type RedisPort struct {
	cache *redis.Client
}

func NewRedisPort(cache *redis.Client) *RedisPort {
	return &RedisPort{cache: cache}
}

func (p *RedisPort) Load(c context.Context, userId uuid.UUID) (cart.Cart, bool, error) {
	c, span := inOtel.Tracer.Start(c, "RedisPort Load")
	defer span.End()

	cacheKey := fmt.Sprintf(keyCartSnapshot, userId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisPort Load").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	jsonString, err := p.cache.Get(c, cacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.Cart{}, false, nil
		}
		err = fmt.Errorf("failed finding cart snapshot in cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart.Cart{}, false, err
	}

	snapshot := cart.Cart{}
	err = json.Unmarshal([]byte(jsonString), &snapshot)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling cart snapshot with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart.Cart{}, false, err
	}

	return snapshot, true, nil
}

func (p *RedisPort) Save(c context.Context, userId uuid.UUID, snapshot cart.Cart) error {
	c, span := inOtel.Tracer.Start(c, "RedisPort Save")
	defer span.End()

	cacheKey := fmt.Sprintf(keyCartSnapshot, userId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisPort Save").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	jsonSnapshot, err := json.Marshal(snapshot)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart snapshot with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	err = p.cache.Set(c, cacheKey, jsonSnapshot, 0).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting cart snapshot to cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	return nil
}

func (p *RedisPort) Delete(c context.Context, userId uuid.UUID) error {
	c, span := inOtel.Tracer.Start(c, "RedisPort Delete")
	defer span.End()

	cacheKey := fmt.Sprintf(keyCartSnapshot, userId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisPort Delete").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	err := p.cache.Del(c, cacheKey).Err()
	if err != nil {
		err = fmt.Errorf("failed deleting cart snapshot from cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	return nil
}
