package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	inOtel "github.com/foodie-app/foodie/cart/internal/otel"
	"github.com/foodie-app/foodie/cart/pkg/cart"
	commonErrors "github.com/foodie-app/foodie/internal/errors"
	"github.com/foodie-app/foodie/internal/log"
)

var (
	// ErrSellerConflict is returned when an addition would mix sellers. The
	// cart is left unchanged; callers retry with Confirmed set after the user
	// agreed to clear the existing cart.
	ErrSellerConflict  = errors.New("cart holds items from a different seller")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
)

// PersistencePort is the key-value device carts are snapshotted through.
// Save failures never fail a mutation; the in-memory cart stays authoritative
// for the session.
type PersistencePort interface {
	Load(c context.Context, userId uuid.UUID) (cart.Cart, bool, error)
	Save(c context.Context, userId uuid.UUID, snapshot cart.Cart) error
	Delete(c context.Context, userId uuid.UUID) error
}

// Product is the sanitized catalog projection additions are built from.
type Product struct {
	ID        uuid.UUID
	SellerID  uuid.UUID
	Title     string
	UnitPrice decimal.Decimal
	ImageRef  string
}

type AddParams struct {
	Product      Product
	Quantity     int32
	Variant      cart.Variant
	Instructions string
	// Confirmed allows clearing a different seller's cart before adding.
	Confirmed bool
}

type entry struct {
	mu     sync.Mutex
	loaded bool
	cart   cart.Cart
	// seq numbers every published snapshot so the async persistence path can
	// tell stale writes from current ones.
	seq uint64

	// persistMu serializes port writes for this entry; persistedSeq is the
	// newest snapshot that reached the port. Guarded by persistMu, not mu.
	persistMu    sync.Mutex
	persistedSeq uint64
}

// Store owns one cart per user. Every mutation runs under the cart's mutex,
// recomputes totals as the last step before the snapshot is published, and
// then persists the snapshot asynchronously.
type Store struct {
	pricing cart.PricingConfig
	port    PersistencePort

	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

func New(pricing cart.PricingConfig, port PersistencePort) *Store {
	return &Store{
		pricing: pricing,
		port:    port,
		entries: map[uuid.UUID]*entry{},
	}
}

func (s *Store) entryFor(userId uuid.UUID) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userId]
	if !ok {
		e = &entry{cart: cart.Empty()}
		s.entries[userId] = e
	}
	return e
}

// restore loads the persisted snapshot the first time a user's cart is
// touched. Load failures start an empty cart; the snapshot is best-effort.
func (s *Store) restore(c context.Context, userId uuid.UUID, e *entry) {
	if e.loaded {
		return
	}
	e.loaded = true

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store restore").
		Str(log.KeyUserID, userId.String()).
		Logger()

	snapshot, ok, err := s.port.Load(c, userId)
	if err != nil {
		err = fmt.Errorf("failed loading cart snapshot with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	if !ok {
		return
	}
	// Recompute rather than trust persisted totals; the pricing config may
	// have changed since the snapshot was written.
	snapshot.Totals = cart.ComputeTotals(snapshot.Lines, s.pricing)
	e.cart = snapshot
	logger.Info().Int(log.KeyCartLines, len(snapshot.Lines)).Msg("restored cart snapshot")
}

// persist writes the snapshot without blocking the caller. The mutation
// already succeeded logically, so failure is logged and recorded, not
// returned. Writes for one entry are serialized and stale snapshots are
// skipped, so the newest published snapshot always wins regardless of
// goroutine scheduling.
func (s *Store) persist(c context.Context, userId uuid.UUID, e *entry, snapshot cart.Cart, seq uint64) {
	c = context.WithoutCancel(c)
	go func() {
		c, span := inOtel.Tracer.Start(c, "Store persist")
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "Store persist").
			Str(log.KeyUserID, userId.String()).
			Logger()

		e.persistMu.Lock()
		defer e.persistMu.Unlock()
		if seq <= e.persistedSeq {
			logger.Debug().Msg("skipping persist of superseded snapshot")
			return
		}
		e.persistedSeq = seq

		var err error
		if snapshot.IsEmpty() {
			err = s.port.Delete(c, userId)
		} else {
			err = s.port.Save(c, userId, snapshot)
		}
		if err != nil {
			err = fmt.Errorf("failed persisting cart snapshot with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Warn().Err(err).Msg(err.Error())
		}
	}()
}

func (s *Store) publish(c context.Context, userId uuid.UUID, e *entry, lines []cart.Line, sellerId uuid.UUID) cart.Cart {
	if len(lines) == 0 {
		e.cart = cart.Empty()
	} else {
		e.cart = cart.Cart{
			Lines:    lines,
			SellerID: sellerId,
			Totals:   cart.ComputeTotals(lines, s.pricing),
		}
	}
	e.seq++
	s.persist(c, userId, e, e.cart, e.seq)
	return e.cart
}

// Snapshot returns the current cart without mutating it.
func (s *Store) Snapshot(c context.Context, userId uuid.UUID) cart.Cart {
	e := s.entryFor(userId)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.restore(c, userId, e)
	return e.cart
}

// Add merges the product into the cart. An existing line with the same
// (productId, variant) has its quantity incremented and, when instructions
// are provided, its instructions overwritten; otherwise a new line is
// appended with a fresh line id.
func (s *Store) Add(c context.Context, userId uuid.UUID, param AddParams) (cart.Cart, error) {
	c, span := inOtel.Tracer.Start(c, "Store Add")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Add").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, param.Product.ID.String()).
		Int32(log.KeyLineQuantity, param.Quantity).
		Logger()

	e := s.entryFor(userId)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.restore(c, userId, e)

	if param.Quantity < 1 {
		commonErrors.HandleError(ErrInvalidQuantity, span)
		logger.Error().Err(ErrInvalidQuantity).Msg(ErrInvalidQuantity.Error())
		return e.cart, ErrInvalidQuantity
	}
	if param.Product.UnitPrice.IsNegative() {
		commonErrors.HandleError(ErrInvalidPrice, span)
		logger.Error().Err(ErrInvalidPrice).Msg(ErrInvalidPrice.Error())
		return e.cart, ErrInvalidPrice
	}

	if !e.cart.IsEmpty() && e.cart.SellerID != param.Product.SellerID {
		if !param.Confirmed {
			logger.Info().
				Str(log.KeySellerID, param.Product.SellerID.String()).
				Msg("rejected cross seller addition without confirmation")
			return e.cart, ErrSellerConflict
		}
		logger.Info().Msg("clearing cart before adding item from different seller")
		e.cart = cart.Empty()
	}

	lines := e.cart.CloneLines()
	if i := e.cart.FindLine(param.Product.ID, param.Variant); i >= 0 {
		lines[i].Quantity += param.Quantity
		if param.Instructions != "" {
			lines[i].Instructions = param.Instructions
		}
		logger.Info().
			Str(log.KeyCartLineID, lines[i].ID.String()).
			Int32(log.KeyLineQuantity, lines[i].Quantity).
			Msg("merged line quantity")
	} else {
		lines = append(lines, cart.Line{
			ID:           uuid.New(),
			ProductID:    param.Product.ID,
			Title:        param.Product.Title,
			UnitPrice:    param.Product.UnitPrice,
			ImageRef:     param.Product.ImageRef,
			Quantity:     param.Quantity,
			Variant:      param.Variant,
			Instructions: param.Instructions,
		})
		logger.Info().Msg("appended new line")
	}

	return s.publish(c, userId, e, lines, param.Product.SellerID), nil
}

// RemoveLine drops the line when present. Unknown line ids are a no-op since
// double taps from the UI are expected.
func (s *Store) RemoveLine(c context.Context, userId, lineId uuid.UUID) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "Store RemoveLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store RemoveLine").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartLineID, lineId.String()).
		Logger()

	e := s.entryFor(userId)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.restore(c, userId, e)

	i := e.cart.FindLineById(lineId)
	if i < 0 {
		logger.Info().Msg("line not found, ignoring removal")
		return e.cart
	}

	lines := e.cart.CloneLines()
	lines = append(lines[:i], lines[i+1:]...)
	logger.Info().Msg("removed line")

	return s.publish(c, userId, e, lines, e.cart.SellerID)
}

// SetQuantity replaces the line's quantity. Zero or negative quantity removes
// the line. Unknown line ids are a no-op.
func (s *Store) SetQuantity(c context.Context, userId, lineId uuid.UUID, quantity int32) cart.Cart {
	if quantity <= 0 {
		return s.RemoveLine(c, userId, lineId)
	}

	c, span := inOtel.Tracer.Start(c, "Store SetQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store SetQuantity").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartLineID, lineId.String()).
		Int32(log.KeyLineQuantity, quantity).
		Logger()

	e := s.entryFor(userId)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.restore(c, userId, e)

	i := e.cart.FindLineById(lineId)
	if i < 0 {
		logger.Info().Msg("line not found, ignoring quantity change")
		return e.cart
	}

	lines := e.cart.CloneLines()
	lines[i].Quantity = quantity
	logger.Info().Msg("replaced line quantity")

	return s.publish(c, userId, e, lines, e.cart.SellerID)
}

// SetInstructions overwrites the line's special instructions. Unknown line
// ids are a no-op.
func (s *Store) SetInstructions(c context.Context, userId, lineId uuid.UUID, instructions string) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "Store SetInstructions")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store SetInstructions").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartLineID, lineId.String()).
		Logger()

	e := s.entryFor(userId)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.restore(c, userId, e)

	i := e.cart.FindLineById(lineId)
	if i < 0 {
		logger.Info().Msg("line not found, ignoring instructions change")
		return e.cart
	}

	lines := e.cart.CloneLines()
	lines[i].Instructions = instructions
	logger.Info().Msg("overwrote line instructions")

	return s.publish(c, userId, e, lines, e.cart.SellerID)
}

// Clear empties the cart. Clearing an already empty cart is a no-op that
// yields the same empty state.
func (s *Store) Clear(c context.Context, userId uuid.UUID) cart.Cart {
	c, span := inOtel.Tracer.Start(c, "Store Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Store Clear").
		Str(log.KeyUserID, userId.String()).
		Logger()

	e := s.entryFor(userId)
	e.mu.Lock()
	defer e.mu.Unlock()
	s.restore(c, userId, e)

	logger.Info().Int(log.KeyCartLines, len(e.cart.Lines)).Msg("clearing cart")
	return s.publish(c, userId, e, nil, uuid.Nil)
}
