package repository

import (
	"context"
	"testing"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createCategory(t *testing.T, testDB *gorm.DB, title string) model.ShopItemCategory {
	category := model.ShopItemCategory{Title: title, Description: title + " goods"}
	require.NoError(t, testDB.Create(&category).Error)
	return category
}

func createCustomer(t *testing.T, testDB *gorm.DB, email string) model.Customer {
	customer := model.Customer{Name: "John", Surname: "Doe", Email: email}
	require.NoError(t, testDB.Create(&customer).Error)
	return customer
}

func TestPagination_Normalized(t *testing.T) {
	assert.Equal(t, Pagination{Offset: 0, Limit: DefaultLimit}, Pagination{Offset: -3}.normalized())
	assert.Equal(t, Pagination{Offset: 5, Limit: MaxLimit}, Pagination{Offset: 5, Limit: 5000}.normalized())
	assert.Equal(t, Pagination{Offset: 2, Limit: 10}, Pagination{Offset: 2, Limit: 10}.normalized())
}

func TestCustomerRepository_CRUD(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	customer := &model.Customer{Name: "Jane", Surname: "Smith", Email: "jane@example.com"}
	require.NoError(t, repo.Create(ctx, customer))
	assert.NotZero(t, customer.ID)

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", found.Email)

	byEmail, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byEmail.ID)

	found.Surname = "Doe"
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doe", reloaded.Surname)

	require.NoError(t, repo.Delete(ctx, customer.ID))
	_, err = repo.FindByID(ctx, customer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Customer{Name: "A", Surname: "B", Email: "dup@example.com"}))
	err := repo.Create(ctx, &model.Customer{Name: "C", Surname: "D", Email: "dup@example.com"})
	assert.Error(t, err)

	customers, err := repo.FindAll(ctx, Pagination{})
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestCustomerRepository_FindAllPaginates(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		createCustomer(t, testDB, email)
	}

	page, err := repo.FindAll(ctx, Pagination{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b@example.com", page[0].Email)
}

func TestCategoryRepository_FindByIDs(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	books := createCategory(t, testDB, "Books")
	toys := createCategory(t, testDB, "Toys")

	found, err := repo.FindByIDs(ctx, []uint{toys.ID, books.ID, 999})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, books.ID, found[0].ID)
	assert.Equal(t, toys.ID, found[1].ID)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCategoryRepository_DeleteUnlinksItems(t *testing.T) {
	testDB := setupRepositoryTest(t)
	categoryRepo := NewCategoryRepository(testDB)
	itemRepo := NewShopItemRepository(testDB)
	ctx := context.Background()

	books := createCategory(t, testDB, "Books")
	item := &model.ShopItem{
		Title:      "Go in Action",
		Price:      decimal.RequireFromString("39.99"),
		Categories: []model.ShopItemCategory{books},
	}
	require.NoError(t, itemRepo.Create(ctx, item))

	require.NoError(t, categoryRepo.Delete(ctx, books.ID))

	reloaded, err := itemRepo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Categories)

	_, err = categoryRepo.FindByID(ctx, books.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShopItemRepository_CreateAndFind(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewShopItemRepository(testDB)
	ctx := context.Background()

	electronics := createCategory(t, testDB, "Electronics")
	home := createCategory(t, testDB, "Home")

	item := &model.ShopItem{
		Title:       "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("24.50"),
		Categories:  []model.ShopItemCategory{home, electronics},
	}
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID)

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", found.Title)
	assert.True(t, decimal.RequireFromString("24.5").Equal(found.Price))
	require.Len(t, found.Categories, 2)
	assert.Equal(t, electronics.ID, found.Categories[0].ID)
	assert.Equal(t, home.ID, found.Categories[1].ID)

	var categoryCount int64
	testDB.Model(&model.ShopItemCategory{}).Count(&categoryCount)
	assert.Equal(t, int64(2), categoryCount)
}

func TestShopItemRepository_UpdateReplacesCategories(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewShopItemRepository(testDB)
	ctx := context.Background()

	a := createCategory(t, testDB, "A")
	b := createCategory(t, testDB, "B")
	c := createCategory(t, testDB, "C")

	item := &model.ShopItem{
		Title:      "Widget",
		Price:      decimal.NewFromInt(5),
		Categories: []model.ShopItemCategory{a, b},
	}
	require.NoError(t, repo.Create(ctx, item))

	item.Title = "Widget v2"
	item.Categories = []model.ShopItemCategory{c}
	require.NoError(t, repo.Update(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", found.Title)
	require.Len(t, found.Categories, 1)
	assert.Equal(t, c.ID, found.Categories[0].ID)

	found.Categories = nil
	require.NoError(t, repo.Update(ctx, found))

	cleared, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Categories)
}

func TestShopItemRepository_DeleteAndCountOrderItems(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewShopItemRepository(testDB)
	orderItemRepo := NewOrderItemRepository(testDB)
	ctx := context.Background()

	cat := createCategory(t, testDB, "Garden")
	item := &model.ShopItem{Title: "Rake", Price: decimal.NewFromInt(12), Categories: []model.ShopItemCategory{cat}}
	require.NoError(t, repo.Create(ctx, item))

	count, err := repo.CountOrderItems(ctx, item.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	line := &model.OrderItem{ShopItemID: item.ID, Quantity: 1}
	require.NoError(t, orderItemRepo.Create(ctx, line))

	count, err = repo.CountOrderItems(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, orderItemRepo.Delete(ctx, line.ID))
	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var links int64
	testDB.Table(model.ShopItemCategoryJoinTable).Count(&links)
	assert.Zero(t, links)
}

func TestOrderRepository_CreateWithItemsAndDelete(t *testing.T) {
	testDB := setupRepositoryTest(t)
	orderRepo := NewOrderRepository(testDB)
	orderItemRepo := NewOrderItemRepository(testDB)
	ctx := context.Background()

	customer := createCustomer(t, testDB, "buyer@example.com")
	cat := createCategory(t, testDB, "Books")
	item := model.ShopItem{Title: "Book", Price: decimal.RequireFromString("9.99"), Categories: []model.ShopItemCategory{cat}}
	require.NoError(t, NewShopItemRepository(testDB).Create(ctx, &item))

	order := &model.Order{CustomerID: customer.ID}
	require.NoError(t, orderRepo.Create(ctx, order))
	assert.NotZero(t, order.ID)

	require.NoError(t, orderItemRepo.CreateBatch(ctx, []model.OrderItem{
		{OrderID: &order.ID, ShopItemID: item.ID, Quantity: 2},
		{OrderID: &order.ID, ShopItemID: item.ID, Quantity: 1},
	}))

	found, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", found.Customer.Email)
	require.Len(t, found.Items, 2)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Equal(t, "Book", found.Items[0].ShopItem.Title)
	require.Len(t, found.Items[0].ShopItem.Categories, 1)
	assert.Equal(t, "Books", found.Items[0].ShopItem.Categories[0].Title)

	count, err := orderRepo.CountByCustomerID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, orderRepo.Delete(ctx, order.ID))

	exists, err := orderRepo.Exists(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	remaining, err := orderItemRepo.FindAll(ctx, Pagination{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestOrderRepository_WithTxRollsBack(t *testing.T) {
	testDB := setupRepositoryTest(t)
	orderRepo := NewOrderRepository(testDB)
	ctx := context.Background()

	customer := createCustomer(t, testDB, "tx@example.com")

	err := testDB.Transaction(func(tx *gorm.DB) error {
		if err := orderRepo.WithTx(tx).Create(ctx, &model.Order{CustomerID: customer.ID}); err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	assert.ErrorIs(t, err, gorm.ErrInvalidData)

	count, err := orderRepo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOrderRepository_UpdateCustomer(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewOrderRepository(testDB)
	ctx := context.Background()

	first := createCustomer(t, testDB, "first@example.com")
	second := createCustomer(t, testDB, "second@example.com")

	order := &model.Order{CustomerID: first.ID}
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, repo.UpdateCustomer(ctx, order.ID, second.ID))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.CustomerID)
	assert.Empty(t, found.Items)
}

func TestOrderItemRepository_UpdateAndDeleteByOrderID(t *testing.T) {
	testDB := setupRepositoryTest(t)
	repo := NewOrderItemRepository(testDB)
	ctx := context.Background()

	customer := createCustomer(t, testDB, "items@example.com")
	item := model.ShopItem{Title: "Pen", Price: decimal.RequireFromString("1.25")}
	require.NoError(t, NewShopItemRepository(testDB).Create(ctx, &item))

	order := &model.Order{CustomerID: customer.ID}
	require.NoError(t, NewOrderRepository(testDB).Create(ctx, order))

	line := &model.OrderItem{ShopItemID: item.ID, Quantity: 3}
	require.NoError(t, repo.Create(ctx, line))
	assert.Nil(t, line.OrderID)

	line.OrderID = &order.ID
	line.Quantity = 4
	require.NoError(t, repo.Update(ctx, line))

	found, err := repo.FindByID(ctx, line.ID)
	require.NoError(t, err)
	require.NotNil(t, found.OrderID)
	assert.Equal(t, order.ID, *found.OrderID)
	assert.Equal(t, 4, found.Quantity)
	assert.Equal(t, "Pen", found.ShopItem.Title)
	assert.Empty(t, found.ShopItem.Categories)

	require.NoError(t, repo.DeleteByOrderID(ctx, order.ID))
	_, err = repo.FindByID(ctx, line.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
