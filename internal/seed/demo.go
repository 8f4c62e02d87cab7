package seed

import (
	"context"
	"fmt"

	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Services is the subset of the service layer seeding writes through.
type Services struct {
	Customers  service.CustomerService
	Categories service.CategoryService
	Items      service.ShopItemService
	Orders     service.OrderService
}

var demoCustomers = []service.CustomerInput{
	{Name: "John", Surname: "Doe", Email: "john.doe@example.com"},
	{Name: "Jane", Surname: "Smith", Email: "jane.smith@example.com"},
	{Name: "Bob", Surname: "Johnson", Email: "bob.johnson@example.com"},
}

var demoCategories = []service.CategoryInput{
	{Title: "Electronics", Description: "Electronic devices and gadgets"},
	{Title: "Clothing", Description: "Clothing and fashion items"},
	{Title: "Books", Description: "Books and educational materials"},
	{Title: "Home & Garden", Description: "Home and garden supplies"},
}

// demoItem refers to categories by index into demoCategories.
type demoItem struct {
	title       string
	description string
	price       string
	categories  []int
}

var demoItems = []demoItem{
	{"Smartphone", "Latest smartphone with advanced features", "599.99", []int{0}},
	{"Laptop", "High-performance laptop for work and gaming", "1299.99", []int{0}},
	{"T-Shirt", "Comfortable cotton t-shirt", "19.99", []int{1}},
	{"Jeans", "Classic blue jeans", "49.99", []int{1}},
	{"Python Programming Book", "Learn Python programming from scratch", "39.99", []int{2}},
	{"Garden Tools Set", "Complete set of garden tools", "79.99", []int{3}},
}

// demoOrder refers to customers and items by index.
type demoOrder struct {
	customer int
	lines    [][2]int // item index, quantity
}

var demoOrders = []demoOrder{
	{customer: 0, lines: [][2]int{{0, 1}, {2, 2}}},
	{customer: 1, lines: [][2]int{{1, 1}, {4, 1}}},
}

// Demo fills an empty database with a small sample shop. It returns false
// without writing anything when customers already exist.
func Demo(ctx context.Context, svc Services) (bool, error) {
	existing, err := svc.Customers.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count customers: %w", err)
	}
	if existing > 0 {
		logger.Debug("Database already has data, skipping demo seed", map[string]interface{}{
			"customers": existing,
		})
		return false, nil
	}

	customerIDs := make([]uint, 0, len(demoCustomers))
	for _, input := range demoCustomers {
		customer, err := svc.Customers.Create(ctx, input)
		if err != nil {
			return false, fmt.Errorf("failed to seed customer %s: %w", input.Email, err)
		}
		customerIDs = append(customerIDs, customer.ID)
	}

	categoryIDs := make([]uint, 0, len(demoCategories))
	for _, input := range demoCategories {
		category, err := svc.Categories.Create(ctx, input)
		if err != nil {
			return false, fmt.Errorf("failed to seed category %s: %w", input.Title, err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	itemIDs := make([]uint, 0, len(demoItems))
	for _, d := range demoItems {
		ids := make([]uint, 0, len(d.categories))
		for _, idx := range d.categories {
			ids = append(ids, categoryIDs[idx])
		}
		item, err := svc.Items.Create(ctx, service.ShopItemInput{
			Title:       d.title,
			Description: d.description,
			Price:       decimal.RequireFromString(d.price),
			CategoryIDs: ids,
		})
		if err != nil {
			return false, fmt.Errorf("failed to seed shop item %s: %w", d.title, err)
		}
		itemIDs = append(itemIDs, item.ID)
	}

	for _, d := range demoOrders {
		lines := make([]service.OrderLine, 0, len(d.lines))
		for _, l := range d.lines {
			lines = append(lines, service.OrderLine{ShopItemID: itemIDs[l[0]], Quantity: l[1]})
		}
		if _, err := svc.Orders.Create(ctx, service.OrderInput{
			CustomerID: customerIDs[d.customer],
			Items:      lines,
		}); err != nil {
			return false, fmt.Errorf("failed to seed order: %w", err)
		}
	}

	logger.Info("Demo data seeded", map[string]interface{}{
		"customers":  len(demoCustomers),
		"categories": len(demoCategories),
		"items":      len(demoItems),
		"orders":     len(demoOrders),
	})
	return true, nil
}
