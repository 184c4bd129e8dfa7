package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodie-app/foodie/cart/pkg/cart"
)

type fakePort struct {
	mu    sync.Mutex
	carts map[uuid.UUID]cart.Cart
}

func newFakePort() *fakePort {
	return &fakePort{carts: map[uuid.UUID]cart.Cart{}}
}

func (f *fakePort) Load(_ context.Context, userId uuid.UUID) (cart.Cart, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot, ok := f.carts[userId]
	return snapshot, ok, nil
}

func (f *fakePort) Save(_ context.Context, userId uuid.UUID, snapshot cart.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[userId] = snapshot
	return nil
}

func (f *fakePort) Delete(_ context.Context, userId uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, userId)
	return nil
}

func (f *fakePort) snapshot(userId uuid.UUID) (cart.Cart, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot, ok := f.carts[userId]
	return snapshot, ok
}

func testProduct(sellerId uuid.UUID, price string) Product {
	return Product{
		ID:        uuid.New(),
		SellerID:  sellerId,
		Title:     "Margherita Pizza",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestAddMergesSameProductAndVariant(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()
	product := testProduct(uuid.New(), "9.99")

	first, err := store.Add(c, userId, AddParams{Product: product, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, first.Lines, 1)

	second, err := store.Add(c, userId, AddParams{Product: product, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, second.Lines, 1)
	assert.Equal(t, first.Lines[0].ID, second.Lines[0].ID)
	assert.EqualValues(t, 3, second.Lines[0].Quantity)
	assert.True(t, second.Totals.Subtotal.Equal(decimal.RequireFromString("29.97")))
}

func TestAddDifferentVariantAppendsLine(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()
	product := testProduct(uuid.New(), "9.99")

	_, err := store.Add(c, userId, AddParams{
		Product:  product,
		Quantity: 1,
		Variant:  cart.Variant{Size: "small"},
	})
	require.NoError(t, err)

	snapshot, err := store.Add(c, userId, AddParams{
		Product:  product,
		Quantity: 1,
		Variant:  cart.Variant{Size: "large"},
	})
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 2)
	assert.NotEqual(t, snapshot.Lines[0].ID, snapshot.Lines[1].ID)
}

func TestAddRejectsInvalidQuantityAndPrice(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()
	sellerId := uuid.New()

	_, err := store.Add(c, userId, AddParams{Product: testProduct(sellerId, "9.99"), Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = store.Add(c, userId, AddParams{Product: testProduct(sellerId, "-1"), Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	snapshot := store.Snapshot(c, userId)
	assert.True(t, snapshot.IsEmpty())
}

func TestAddCrossSellerNeedsConfirmation(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()

	before, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "12.00"),
		Quantity: 2,
	})
	require.NoError(t, err)

	otherSeller := testProduct(uuid.New(), "7.50")
	after, err := store.Add(c, userId, AddParams{Product: otherSeller, Quantity: 1})

	assert.ErrorIs(t, err, ErrSellerConflict)
	assert.Equal(t, before.SellerID, after.SellerID)
	require.Len(t, after.Lines, 1)
	assert.Equal(t, before.Lines[0].ID, after.Lines[0].ID)
	assert.EqualValues(t, 2, after.Lines[0].Quantity)
}

func TestAddCrossSellerConfirmedClearsCart(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()

	_, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "12.00"),
		Quantity: 2,
	})
	require.NoError(t, err)

	otherSeller := testProduct(uuid.New(), "7.50")
	snapshot, err := store.Add(c, userId, AddParams{
		Product:   otherSeller,
		Quantity:  1,
		Confirmed: true,
	})
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, otherSeller.SellerID, snapshot.SellerID)
	assert.Equal(t, otherSeller.ID, snapshot.Lines[0].ProductID)
	assert.True(t, snapshot.Totals.Subtotal.Equal(decimal.RequireFromString("7.5")))
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()

	snapshot, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "9.99"),
		Quantity: 2,
	})
	require.NoError(t, err)
	lineId := snapshot.Lines[0].ID

	snapshot = store.SetQuantity(c, userId, lineId, 0)

	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, uuid.Nil, snapshot.SellerID)
	assert.True(t, snapshot.Totals.Total.IsZero())
}

func TestRemoveUnknownLineIsNoop(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()

	before, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "9.99"),
		Quantity: 1,
	})
	require.NoError(t, err)

	after := store.RemoveLine(c, userId, uuid.New())

	assert.Equal(t, before, after)
}

func TestRemoveLastLineResetsSeller(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()

	snapshot, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "9.99"),
		Quantity: 1,
	})
	require.NoError(t, err)

	snapshot = store.RemoveLine(c, userId, snapshot.Lines[0].ID)

	assert.True(t, snapshot.IsEmpty())
	assert.Equal(t, uuid.Nil, snapshot.SellerID)

	fresh, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "4.00"),
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.Len(t, fresh.Lines, 1)
}

func TestSetInstructionsOverwrites(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()

	snapshot, err := store.Add(c, userId, AddParams{
		Product:      testProduct(uuid.New(), "9.99"),
		Quantity:     1,
		Instructions: "no onions",
	})
	require.NoError(t, err)
	lineId := snapshot.Lines[0].ID

	snapshot = store.SetInstructions(c, userId, lineId, "extra cheese")

	assert.Equal(t, "extra cheese", snapshot.Lines[0].Instructions)
}

func TestClearIsIdempotent(t *testing.T) {
	c := context.Background()
	store := New(cart.DefaultPricingConfig(), newFakePort())
	userId := uuid.New()

	_, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "9.99"),
		Quantity: 1,
	})
	require.NoError(t, err)

	first := store.Clear(c, userId)
	second := store.Clear(c, userId)

	assert.True(t, first.IsEmpty())
	assert.Equal(t, first, second)
}

func TestMutationsPersistSnapshot(t *testing.T) {
	c := context.Background()
	port := newFakePort()
	store := New(cart.DefaultPricingConfig(), port)
	userId := uuid.New()

	_, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "9.99"),
		Quantity: 2,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		snapshot, ok := port.snapshot(userId)
		return ok && len(snapshot.Lines) == 1 && snapshot.Lines[0].Quantity == 2
	}, time.Second, 10*time.Millisecond)
}

func TestClearDeletesPersistedSnapshot(t *testing.T) {
	c := context.Background()
	port := newFakePort()
	store := New(cart.DefaultPricingConfig(), port)
	userId := uuid.New()

	_, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "9.99"),
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, ok := port.snapshot(userId)
		return ok
	}, time.Second, 10*time.Millisecond)

	store.Clear(c, userId)

	assert.Eventually(t, func() bool {
		_, ok := port.snapshot(userId)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

// slowFirstSavePort stalls the first Save so a later Delete can reach the
// port before it.
type slowFirstSavePort struct {
	*fakePort
	once  sync.Once
	delay time.Duration
}

func (p *slowFirstSavePort) Save(c context.Context, userId uuid.UUID, snapshot cart.Cart) error {
	p.once.Do(func() { time.Sleep(p.delay) })
	return p.fakePort.Save(c, userId, snapshot)
}

func TestClearWinsOverDelayedEarlierSave(t *testing.T) {
	c := context.Background()
	port := &slowFirstSavePort{fakePort: newFakePort(), delay: 200 * time.Millisecond}
	store := New(cart.DefaultPricingConfig(), port)
	userId := uuid.New()

	_, err := store.Add(c, userId, AddParams{
		Product:  testProduct(uuid.New(), "9.99"),
		Quantity: 1,
	})
	require.NoError(t, err)

	store.Clear(c, userId)

	assert.Eventually(t, func() bool {
		_, ok := port.snapshot(userId)
		return !ok
	}, time.Second, 10*time.Millisecond, "a save issued before Clear must not outlive it in the port")

	// A store started fresh against the same port must not resurrect the
	// cleared cart.
	restarted := New(cart.DefaultPricingConfig(), port.fakePort)
	snapshot := restarted.Snapshot(c, userId)
	assert.True(t, snapshot.IsEmpty())
}

func TestSnapshotRestoresPersistedCart(t *testing.T) {
	c := context.Background()
	port := newFakePort()
	userId := uuid.New()
	sellerId := uuid.New()
	persisted := cart.Cart{
		Lines: []cart.Line{{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Title:     "Pad Thai",
			UnitPrice: decimal.RequireFromString("11.25"),
			Quantity:  2,
		}},
		SellerID: sellerId,
		// Stale totals on purpose; restore must recompute them.
		Totals: cart.Totals{},
	}
	require.NoError(t, port.Save(c, userId, persisted))

	store := New(cart.DefaultPricingConfig(), port)
	snapshot := store.Snapshot(c, userId)

	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, sellerId, snapshot.SellerID)
	assert.True(t, snapshot.Totals.Subtotal.Equal(decimal.RequireFromString("22.5")))
	assert.False(t, snapshot.Totals.Total.IsZero())
}
