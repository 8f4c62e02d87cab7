package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/ikkim/shop-backend/internal/seed"
	"github.com/ikkim/shop-backend/pkg/logger"
)

func main() {
	yes := flag.Bool("y", false, "import without asking for confirmation")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: go run cmd/seed/main.go [-y] <xlsx_file_path>")
		fmt.Fprintln(os.Stderr, "Sheets: categories(title, description), items(title, description, price, categories), customers(name, surname, email)")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Initialize(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	conn, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(conn)

	if err := db.Migrate(conn); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	wb, err := seed.ReadWorkbook(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Rows to import: %d categories, %d items, %d customers (%d invalid)\n",
		len(wb.Categories), len(wb.Items), len(wb.Customers), len(wb.Skipped))

	if !*yes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	customerRepo := repository.NewCustomerRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	shopItemRepo := repository.NewShopItemRepository(conn)
	orderRepo := repository.NewOrderRepository(conn)

	report, err := wb.Import(context.Background(), seed.Services{
		Customers:  service.NewCustomerService(customerRepo, orderRepo),
		Categories: service.NewCategoryService(categoryRepo),
		Items:      service.NewShopItemService(conn, shopItemRepo, categoryRepo),
	})
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Categories: %d, items: %d, customers: %d\n", report.Categories, report.Items, report.Customers)
	for _, reason := range report.Skipped {
		fmt.Printf("  skipped %s\n", reason)
	}
}
