package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/foodie-app/foodie/cart/pkg/cart"
	commonErrors "github.com/foodie-app/foodie/internal/errors"
	"github.com/foodie-app/foodie/internal/log"
	"github.com/foodie-app/foodie/internal/repository"
	inOtel "github.com/foodie-app/foodie/order/internal/otel"
	"github.com/foodie-app/foodie/order/pkg/request"
	"github.com/foodie-app/foodie/order/pkg/response"
)

var (
	ErrNegativeTip    = errors.New("tip must not be negative")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
	ErrOrderNotFound  = errors.New("order not found")
)

// estimatedDeliveryWindow is added to the order creation time when tracking.
const estimatedDeliveryWindow = 45 * time.Minute

type OrderService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	pricing cart.PricingConfig
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	pricing cart.PricingConfig,
) OrderService {
	return OrderService{pool: pool, queries: queries, pricing: pricing}
}

// CreateOrder validates and persists a checkout. Totals are recomputed here
// from the submitted lines; the tip is added on top of the computed total and
// stored on the order, never fed back into the cart aggregate.
func (svc OrderService) CreateOrder(
	c context.Context,
	userId uuid.UUID,
	param request.Checkout,
) (response.Order, error) {
	c, span := inOtel.Tracer.Start(c, "OrderService CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CreateOrder").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeySellerID, param.SellerId.String()).
		Int(log.KeyCartLines, len(param.Lines)).
		Logger()

	if param.Tip.IsNegative() {
		commonErrors.HandleError(ErrNegativeTip, span)
		logger.Error().Err(ErrNegativeTip).Msg(ErrNegativeTip.Error())
		return response.Order{}, ErrNegativeTip
	}

	logger = logger.With().Str(log.KeyProcess, "computing totals").Logger()
	logger.Info().Msg("computing totals")
	lines := make([]cart.Line, 0, len(param.Lines))
	for _, l := range param.Lines {
		if l.UnitPrice.IsNegative() {
			err := fmt.Errorf("line productId=%s has negative unit price", l.ProductId.String())
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		lines = append(lines, cart.Line{
			ProductID: l.ProductId,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	totals := cart.ComputeTotals(lines, svc.pricing)
	total := totals.Total.Add(param.Tip)
	logger = logger.With().
		Str(log.KeySubtotal, totals.Subtotal.String()).
		Str(log.KeyTotal, total.String()).
		Logger()
	logger.Info().Msg("computed totals")

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer func() {
		err := tx.Rollback(c)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized transaction")

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	orderId := uuid.New()
	order, err := svc.queries.WithTx(tx).InsertOrder(c, repository.InsertOrderParams{
		ID:              orderId,
		UserID:          userId,
		SellerID:        param.SellerId,
		Status:          repository.OrderStatusPending,
		Subtotal:        repository.DecimalToNumeric(totals.Subtotal),
		DeliveryFee:     repository.DecimalToNumeric(totals.DeliveryFee),
		Tax:             repository.DecimalToNumeric(totals.Tax),
		Tip:             repository.DecimalToNumeric(param.Tip),
		Total:           repository.DecimalToNumeric(total),
		DeliveryAddress: param.DeliveryAddress,
		PaymentMethod:   param.PaymentMethod,
		Instructions:    param.Instructions,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order lines").Logger()
	logger.Info().Msg("inserting order lines")
	orderLines := make([]repository.OrderLine, 0, len(param.Lines))
	for _, l := range param.Lines {
		arg := repository.InsertOrderLineParams{
			ID:           uuid.New(),
			OrderID:      orderId,
			ProductID:    l.ProductId,
			Title:        l.Title,
			UnitPrice:    repository.DecimalToNumeric(l.UnitPrice),
			Quantity:     l.Quantity,
			Size:         l.Size,
			Color:        l.Color,
			Instructions: l.Instructions,
		}
		err = svc.queries.WithTx(tx).InsertOrderLine(c, arg)
		if err != nil {
			err = fmt.Errorf("failed inserting order line with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		orderLines = append(orderLines, repository.OrderLine(arg))
	}
	logger.Info().Msg("inserted order lines")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	return order.Response(orderLines), nil
}

func (svc OrderService) FindOrdersByUserId(
	c context.Context,
	userId uuid.UUID,
) ([]response.Order, error) {
	c, span := inOtel.Tracer.Start(c, "OrderService FindOrdersByUserId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrdersByUserId").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	orders, err := svc.queries.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(orders))

	responses := make([]response.Order, 0, len(orders))
	for _, order := range orders {
		lines, err := svc.queries.FindOrderLinesByOrderId(c, order.ID)
		if err != nil {
			err = fmt.Errorf("failed finding order lines with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		responses = append(responses, order.Response(lines))
	}
	return responses, nil
}

func (svc OrderService) FindOrderById(
	c context.Context,
	userId, orderId uuid.UUID,
) (response.Order, error) {
	c, span := inOtel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	order, err := svc.queries.FindOrderById(
		c,
		repository.FindOrderByIdParams{ID: orderId, UserID: userId},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("order not found")
			return response.Order{}, ErrOrderNotFound
		}
		err = fmt.Errorf("failed finding order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	lines, err := svc.queries.FindOrderLinesByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order lines with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order")

	return order.Response(lines), nil
}

// CancelOrder moves the order to cancelled. Orders already being prepared or
// further along stay as they are.
func (svc OrderService) CancelOrder(
	c context.Context,
	userId, orderId uuid.UUID,
) (response.Order, error) {
	c, span := inOtel.Tracer.Start(c, "OrderService CancelOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService CancelOrder").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	order, err := svc.queries.FindOrderById(
		c,
		repository.FindOrderByIdParams{ID: orderId, UserID: userId},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Order{}, ErrOrderNotFound
		}
		err = fmt.Errorf("failed finding order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if order.Status != repository.OrderStatusPending &&
		order.Status != repository.OrderStatusConfirmed {
		commonErrors.HandleError(ErrNotCancellable, span)
		logger.Error().Err(ErrNotCancellable).Msg(ErrNotCancellable.Error())
		return response.Order{}, ErrNotCancellable
	}

	logger = logger.With().Str(log.KeyProcess, "cancelling order").Logger()
	logger.Info().Msg("cancelling order")
	order, err = svc.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		ID:     orderId,
		UserID: userId,
		Status: repository.OrderStatusCancelled,
	})
	if err != nil {
		err = fmt.Errorf("failed cancelling order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("cancelled order")

	lines, err := svc.queries.FindOrderLinesByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order lines with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	return order.Response(lines), nil
}

func (svc OrderService) TrackOrder(
	c context.Context,
	userId, orderId uuid.UUID,
) (response.TrackOrder, error) {
	c, span := inOtel.Tracer.Start(c, "OrderService TrackOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService TrackOrder").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	order, err := svc.queries.FindOrderById(
		c,
		repository.FindOrderByIdParams{ID: orderId, UserID: userId},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return response.TrackOrder{}, ErrOrderNotFound
		}
		err = fmt.Errorf("failed finding order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.TrackOrder{}, err
	}

	return response.TrackOrder{
		Status:                string(order.Status),
		EstimatedDeliveryTime: order.CreatedAt.Time.Add(estimatedDeliveryWindow),
	}, nil
}
