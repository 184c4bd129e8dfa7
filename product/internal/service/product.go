package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	commonErrors "github.com/foodie-app/foodie/internal/errors"
	"github.com/foodie-app/foodie/internal/log"
	"github.com/foodie-app/foodie/internal/repository"
	inOtel "github.com/foodie-app/foodie/product/internal/otel"
	"github.com/foodie-app/foodie/product/pkg/response"
)

const (
	cacheKeyProduct        = "products:%s"
	cacheKeyProducts       = "products:all"
	cacheKeySellerProducts = "products:seller:%s"
	cacheKeyRestaurant     = "restaurants:%s"
	cacheKeyRestaurants    = "restaurants:all"
	cacheExpiration        = 5 * time.Minute
)

type ProductService struct {
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(queries *repository.Queries, cache *redis.Client) ProductService {
	return ProductService{queries: queries, cache: cache}
}

// FindProductById reads through the cache. A cache miss or a cache failure
// falls back to the database; cache failures never fail the request.
func (svc ProductService) FindProductById(
	c context.Context,
	productId uuid.UUID,
) (response.Product, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := fmt.Sprintf(cacheKeyProduct, productId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Info().Msg("finding product in cache")
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		product := response.Product{}
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			logger.Info().Msg("found product in cache")
			return product, nil
		}
		logger.Info().Msg("cached product is malformed, falling back to database")
	} else if !errors.Is(err, redis.Nil) {
		logger.Error().Err(err).Msg("failed reading cache, falling back to database")
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Info().Msg("finding product in database")
	product, err := svc.queries.FindProductById(c, productId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("product not found")
			return response.Product{}, commonErrors.ErrProductNotFound
		}
		err = fmt.Errorf("failed finding product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product in database")

	resp := product.Response()
	svc.writeCache(c, logger, cacheKey, resp)
	return resp, nil
}

func (svc ProductService) FindProducts(
	c context.Context,
	sellerId uuid.UUID,
) ([]response.Product, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	cacheKey := cacheKeyProducts
	if sellerId != uuid.Nil {
		cacheKey = fmt.Sprintf(cacheKeySellerProducts, sellerId.String())
	}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Info().Msg("finding products in cache")
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		products := []response.Product{}
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			logger.Info().Msgf("found %d products in cache", len(products))
			return products, nil
		}
		logger.Info().Msg("cached products are malformed, falling back to database")
	} else if !errors.Is(err, redis.Nil) {
		logger.Error().Err(err).Msg("failed reading cache, falling back to database")
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in database").Logger()
	logger.Info().Msg("finding products in database")
	var products []repository.Product
	if sellerId != uuid.Nil {
		products, err = svc.queries.FindProductsBySellerId(c, sellerId)
	} else {
		products, err = svc.queries.FindProducts(c)
	}
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products in database", len(products))

	responses := make([]response.Product, 0, len(products))
	for _, product := range products {
		responses = append(responses, product.Response())
	}
	svc.writeCache(c, logger, cacheKey, responses)
	return responses, nil
}

func (svc ProductService) FindRestaurants(c context.Context) ([]response.Restaurant, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService FindRestaurants")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindRestaurants").
		Str(log.KeyCacheKey, cacheKeyRestaurants).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding restaurants in cache").Logger()
	logger.Info().Msg("finding restaurants in cache")
	cached, err := svc.cache.Get(c, cacheKeyRestaurants).Result()
	if err == nil {
		restaurants := []response.Restaurant{}
		if err := json.Unmarshal([]byte(cached), &restaurants); err == nil {
			logger.Info().Msgf("found %d restaurants in cache", len(restaurants))
			return restaurants, nil
		}
		logger.Info().Msg("cached restaurants are malformed, falling back to database")
	} else if !errors.Is(err, redis.Nil) {
		logger.Error().Err(err).Msg("failed reading cache, falling back to database")
	}

	logger = logger.With().Str(log.KeyProcess, "finding restaurants in database").Logger()
	logger.Info().Msg("finding restaurants in database")
	sellers, err := svc.queries.FindSellers(c)
	if err != nil {
		err = fmt.Errorf("failed finding restaurants with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d restaurants in database", len(sellers))

	responses := make([]response.Restaurant, 0, len(sellers))
	for _, seller := range sellers {
		responses = append(responses, seller.Response())
	}
	svc.writeCache(c, logger, cacheKeyRestaurants, responses)
	return responses, nil
}

func (svc ProductService) FindRestaurantById(
	c context.Context,
	restaurantId uuid.UUID,
) (response.Restaurant, error) {
	c, span := inOtel.Tracer.Start(c, "ProductService FindRestaurantById")
	defer span.End()

	cacheKey := fmt.Sprintf(cacheKeyRestaurant, restaurantId.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindRestaurantById").
		Str(log.KeySellerID, restaurantId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding restaurant in cache").Logger()
	logger.Info().Msg("finding restaurant in cache")
	cached, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		restaurant := response.Restaurant{}
		if err := json.Unmarshal([]byte(cached), &restaurant); err == nil {
			logger.Info().Msg("found restaurant in cache")
			return restaurant, nil
		}
		logger.Info().Msg("cached restaurant is malformed, falling back to database")
	} else if !errors.Is(err, redis.Nil) {
		logger.Error().Err(err).Msg("failed reading cache, falling back to database")
	}

	logger = logger.With().Str(log.KeyProcess, "finding restaurant in database").Logger()
	logger.Info().Msg("finding restaurant in database")
	seller, err := svc.queries.FindSellerById(c, restaurantId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("restaurant not found")
			return response.Restaurant{}, commonErrors.ErrRestaurantNotFound
		}
		err = fmt.Errorf("failed finding restaurant with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Restaurant{}, err
	}
	logger.Info().Msg("found restaurant in database")

	resp := seller.Response()
	svc.writeCache(c, logger, cacheKey, resp)
	return resp, nil
}

func (svc ProductService) writeCache(
	c context.Context,
	logger zerolog.Logger,
	cacheKey string,
	value interface{},
) {
	encoded, err := json.Marshal(value)
	if err != nil {
		logger.Error().Err(err).Msg("failed encoding value for cache")
		return
	}
	err = svc.cache.Set(c, cacheKey, encoded, cacheExpiration).Err()
	if err != nil {
		logger.Error().Err(err).Str(log.KeyCacheKey, cacheKey).Msg("failed writing cache")
	}
}
