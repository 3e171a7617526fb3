package repos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buycycle/internal/domain"
)

func memDB(t *testing.T) *UserRepo {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db)
}

func TestDetectDriver(t *testing.T) {
	assert.Equal(t, DriverPostgres, DetectDriver("postgres://u:p@localhost/buycycle"))
	assert.Equal(t, DriverPostgres, DetectDriver("postgresql://localhost/buycycle"))
	assert.Equal(t, DriverSQLite, DetectDriver("buycycle.db"))
	assert.Equal(t, DriverSQLite, DetectDriver(":memory:"))
}

func TestOpenDB_SeedsCategoriesOnce(t *testing.T) {
	users := memDB(t)
	cats := NewCategoryRepo(users.DB)

	list, err := cats.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)

	require.NoError(t, seedCategories(users.DB))
	list, err = cats.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestUserRepo_InsertIfAbsent(t *testing.T) {
	users := memDB(t)
	ctx := context.Background()
	u := domain.User{ID: domain.NewID(), Email: "alice@x.com", Role: domain.RoleBuyer, CreatedAt: now()}

	ok, err := users.InsertIfAbsent(ctx, u)
	require.NoError(t, err)
	assert.True(t, ok)

	u.ID = domain.NewID()
	ok, err = users.InsertIfAbsent(ctx, u)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := users.ByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleBuyer, got.Role)

	missing, err := users.ByEmail(ctx, "Alice@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSeedAdmins_Idempotent(t *testing.T) {
	users := memDB(t)
	ctx := context.Background()

	require.NoError(t, SeedAdmins(ctx, users.DB, []string{"root@x.com", " ", "ops@x.com"}))
	require.NoError(t, SeedAdmins(ctx, users.DB, []string{"root@x.com"}))

	admins, err := users.List(ctx, "", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}

func TestBookingRepo_UniquePerBuyerAndProduct(t *testing.T) {
	users := memDB(t)
	bookings := NewBookingRepo(users.DB)
	ctx := context.Background()

	b := domain.Booking{ID: domain.NewID(), ProductID: "p1", BuyerEmail: "alice@x.com", CreatedAt: now()}
	ok, err := bookings.InsertIfAbsent(ctx, b)
	require.NoError(t, err)
	assert.True(t, ok)

	b.ID = domain.NewID()
	ok, err = bookings.InsertIfAbsent(ctx, b)
	require.NoError(t, err)
	assert.False(t, ok)

	b.ID, b.BuyerEmail = domain.NewID(), "carol@x.com"
	ok, err = bookings.InsertIfAbsent(ctx, b)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := bookings.DeleteByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestProductRepo_ByIDs(t *testing.T) {
	users := memDB(t)
	prods := NewProductRepo(users.DB)
	ctx := context.Background()

	a := domain.Product{ID: domain.NewID(), CategoryID: "road-bikes", SellerEmail: "bob@x.com", Title: "A", Available: true, CreatedAt: now()}
	b := domain.Product{ID: domain.NewID(), CategoryID: "road-bikes", SellerEmail: "bob@x.com", Title: "B", Available: true, CreatedAt: now()}
	require.NoError(t, prods.Insert(ctx, a))
	require.NoError(t, prods.Insert(ctx, b))

	got, err := prods.ByIDs(ctx, []string{a.ID, domain.NewID()})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Title)
	assert.True(t, got[0].Available)

	empty, err := prods.ByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
