package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inOtel "github.com/foodie-app/foodie/cart/internal/otel"
	"github.com/foodie-app/foodie/cart/internal/store"
	"github.com/foodie-app/foodie/cart/pkg/cart"
	"github.com/foodie-app/foodie/cart/pkg/request"
	"github.com/foodie-app/foodie/internal/common"
	commonErrors "github.com/foodie-app/foodie/internal/errors"
	inHttp "github.com/foodie-app/foodie/internal/http"
	"github.com/foodie-app/foodie/internal/log"
	orderRequest "github.com/foodie-app/foodie/order/pkg/request"
	orderResponse "github.com/foodie-app/foodie/order/pkg/response"
	productResponse "github.com/foodie-app/foodie/product/pkg/response"
)

type CartService struct {
	store *store.Store
}

func NewCartService(store *store.Store) CartService {
	return CartService{store: store}
}

// findProduct resolves the authoritative price and seller from the product
// service; prices sent by clients are never trusted.
func (svc CartService) findProduct(
	c context.Context,
	productId uuid.UUID,
) (productResponse.Product, error) {
	c, span := inOtel.Tracer.Start(c, "CartService findProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService findProduct").
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in product-service").Logger()
	logger.Info().Msg("finding product in product-service")
	req, err := http.NewRequestWithContext(
		c,
		http.MethodGet,
		common.URLProductService+"/"+productId.String(),
		nil,
	)
	if err != nil {
		err = fmt.Errorf("failed creating request to product-service with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	req.Header.Add(inHttp.HeaderRequestID, log.RequestIDFromContext(c))
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%s with error=%w", productId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("productId=%s not found", productId.String())
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}

	respBody := struct {
		Data struct {
			Product productResponse.Product `json:"product"`
		} `json:"data"`
	}{}
	err = json.NewDecoder(resp.Body).Decode(&respBody)
	if err != nil {
		err = fmt.Errorf("failed decoding product-service response with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse.Product{}, err
	}
	logger.Info().Msg("found product in product-service")

	return respBody.Data.Product, nil
}

func (svc CartService) AddItem(
	c context.Context,
	userId uuid.UUID,
	param request.AddItem,
) (cart.Cart, error) {
	c, span := inOtel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	c = logger.WithContext(c)
	product, err := svc.findProduct(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cart.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	c = logger.WithContext(c)
	snapshot, err := svc.store.Add(c, userId, store.AddParams{
		Product: store.Product{
			ID:        product.ID,
			SellerID:  product.SellerId,
			Title:     product.Name,
			UnitPrice: product.Price,
			ImageRef:  product.ImageRef,
		},
		Quantity:     param.Quantity,
		Variant:      cart.Variant{Size: param.Size, Color: param.Color},
		Instructions: param.Instructions,
		Confirmed:    param.Confirmed,
	})
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return snapshot, err
	}
	logger.Info().
		Str(log.KeySubtotal, snapshot.Totals.Subtotal.String()).
		Msg("added item to cart")

	return snapshot, nil
}

func (svc CartService) Snapshot(c context.Context, userId uuid.UUID) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "CartService Snapshot")
	defer span.End()
	return svc.store.Snapshot(c, userId)
}

func (svc CartService) RemoveLine(c context.Context, userId, lineId uuid.UUID) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "CartService RemoveLine")
	defer span.End()
	return svc.store.RemoveLine(c, userId, lineId)
}

func (svc CartService) SetQuantity(
	c context.Context,
	userId, lineId uuid.UUID,
	quantity int32,
) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "CartService SetQuantity")
	defer span.End()
	return svc.store.SetQuantity(c, userId, lineId, quantity)
}

func (svc CartService) SetInstructions(
	c context.Context,
	userId, lineId uuid.UUID,
	instructions string,
) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "CartService SetInstructions")
	defer span.End()
	return svc.store.SetInstructions(c, userId, lineId, instructions)
}

func (svc CartService) Clear(c context.Context, userId uuid.UUID) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "CartService Clear")
	defer span.End()
	return svc.store.Clear(c, userId)
}

// Checkout submits the cart to the order service. The cart is cleared only
// after the order service confirms the order; a failed submission leaves the
// cart untouched so nothing is silently lost on a network failure.
func (svc CartService) Checkout(
	c context.Context,
	token *jwt.Token,
	userId uuid.UUID,
	param request.Checkout,
) (orderResponse.Order, error) {
	c, span := inOtel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Checkout").
		Str(log.KeyUserID, userId.String()).
		Logger()

	snapshot := svc.store.Snapshot(c, userId)
	if snapshot.IsEmpty() {
		err := fmt.Errorf("cart is empty")
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "creating checkout request").Logger()
	logger.Info().Msg("creating checkout request to order-service")
	lines := make([]orderRequest.OrderLine, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, orderRequest.OrderLine{
			ProductId:    line.ProductID,
			Title:        line.Title,
			UnitPrice:    line.UnitPrice,
			Quantity:     line.Quantity,
			Size:         line.Variant.Size,
			Color:        line.Variant.Color,
			Instructions: line.Instructions,
		})
	}
	checkout := orderRequest.Checkout{
		SellerId:        snapshot.SellerID,
		Lines:           lines,
		DeliveryAddress: param.DeliveryAddress,
		PaymentMethod:   param.PaymentMethod,
		Tip:             param.Tip,
		Instructions:    param.Instructions,
	}
	checkoutJson, err := json.Marshal(checkout)
	if err != nil {
		err = fmt.Errorf("failed marshaling checkout request with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		common.URLOrderService+"/checkout",
		bytes.NewBuffer(checkoutJson),
	)
	if err != nil {
		err = fmt.Errorf("failed creating request to order-service with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	req.Header.Add("Authorization", "Bearer "+token.Raw)
	req.Header.Add(inHttp.HeaderRequestID, log.RequestIDFromContext(c))
	logger.Info().Msg("created checkout request to order-service")

	logger = logger.With().Str(log.KeyProcess, "sending checkout request").Logger()
	logger.Info().Msg("sending checkout request to order-service")
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed checkout to order-service with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	defer resp.Body.Close()
	logger.Info().Msg("sent checkout request to order-service")

	logger = logger.With().Str(log.KeyProcess, "decoding checkout response").Logger()
	respBody := struct {
		Message string `json:"message"`
		Data    struct {
			Order orderResponse.Order `json:"order"`
		} `json:"data"`
	}{}
	err = json.NewDecoder(resp.Body).Decode(&respBody)
	if err != nil {
		err = fmt.Errorf("failed decoding checkout response with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf(
			"order service returned status code=%d with message=%s",
			resp.StatusCode,
			respBody.Message,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, respBody.Data.Order.ID.String()).Logger()
	logger.Info().Msg("order placed")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart after successful order")
	c = logger.WithContext(c)
	svc.store.Clear(c, userId)
	logger.Info().Msg("cleared cart")

	return respBody.Data.Order, nil
}
