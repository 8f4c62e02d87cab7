package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names read by ReadWorkbook. Each sheet starts with a header row.
const (
	SheetCategories = "categories"
	SheetItems      = "items"
	SheetCustomers  = "customers"
)

type CategoryRow struct {
	Line        int
	Title       string
	Description string
}

type ItemRow struct {
	Line        int
	Title       string
	Description string
	Price       decimal.Decimal
	Categories  []string // category titles
}

type CustomerRow struct {
	Line    int
	Name    string
	Surname string
	Email   string
}

// Workbook is a parsed catalog file. Rows that failed to parse are listed
// in Skipped and never reach Import.
type Workbook struct {
	Categories []CategoryRow
	Items      []ItemRow
	Customers  []CustomerRow
	Skipped    []string
}

type ImportReport struct {
	Categories int
	Items      int
	Customers  int
	Skipped    []string
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ReadWorkbook parses the categories, items and customers sheets of an
// xlsx file. Missing sheets are treated as empty.
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	return parseWorkbook(f)
}

func parseWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}
	skip := func(sheet string, line int, reason string) {
		wb.Skipped = append(wb.Skipped, fmt.Sprintf("%s row %d: %s", sheet, line, reason))
	}

	rows, err := sheetRows(f, SheetCategories)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		line := i + 2
		if blank(row) {
			continue
		}
		r := CategoryRow{Line: line, Title: cell(row, 0), Description: cell(row, 1)}
		if r.Title == "" || r.Description == "" {
			skip(SheetCategories, line, "title and description are required")
			continue
		}
		wb.Categories = append(wb.Categories, r)
	}

	rows, err = sheetRows(f, SheetItems)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		line := i + 2
		if blank(row) {
			continue
		}
		r := ItemRow{Line: line, Title: cell(row, 0), Description: cell(row, 1)}
		if r.Title == "" {
			skip(SheetItems, line, "title is required")
			continue
		}
		price, err := decimal.NewFromString(cell(row, 2))
		if err != nil || price.IsNegative() {
			skip(SheetItems, line, fmt.Sprintf("invalid price %q", cell(row, 2)))
			continue
		}
		r.Price = price
		for _, title := range strings.Split(cell(row, 3), ",") {
			if title = strings.TrimSpace(title); title != "" {
				r.Categories = append(r.Categories, title)
			}
		}
		wb.Items = append(wb.Items, r)
	}

	rows, err = sheetRows(f, SheetCustomers)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		line := i + 2
		if blank(row) {
			continue
		}
		r := CustomerRow{Line: line, Name: cell(row, 0), Surname: cell(row, 1), Email: cell(row, 2)}
		if r.Name == "" || r.Surname == "" || !strings.Contains(r.Email, "@") {
			skip(SheetCustomers, line, "name, surname and a valid email are required")
			continue
		}
		wb.Customers = append(wb.Customers, r)
	}

	return wb, nil
}

// Import writes the workbook through the service layer. Categories whose
// title already exists are reused; rows rejected by the services are
// reported in Skipped instead of aborting the run.
func (wb *Workbook) Import(ctx context.Context, svc Services) (ImportReport, error) {
	report := ImportReport{Skipped: append([]string(nil), wb.Skipped...)}
	skip := func(sheet string, line int, reason string) {
		report.Skipped = append(report.Skipped, fmt.Sprintf("%s row %d: %s", sheet, line, reason))
	}

	byTitle := make(map[string]uint)
	lookup := func(title string) (uint, error) {
		if id, ok := byTitle[title]; ok {
			return id, nil
		}
		category, err := svc.Categories.FindByTitle(ctx, title)
		if err != nil {
			return 0, err
		}
		byTitle[title] = category.ID
		return category.ID, nil
	}

	for _, r := range wb.Categories {
		if _, err := lookup(r.Title); err == nil {
			skip(SheetCategories, r.Line, fmt.Sprintf("category %q already exists", r.Title))
			continue
		} else if !errors.Is(err, service.ErrCategoryNotFound) {
			return report, err
		}

		category, err := svc.Categories.Create(ctx, service.CategoryInput{Title: r.Title, Description: r.Description})
		if err != nil {
			return report, fmt.Errorf("failed to create category %q: %w", r.Title, err)
		}
		byTitle[category.Title] = category.ID
		report.Categories++
	}

	for _, r := range wb.Items {
		ids := make([]uint, 0, len(r.Categories))
		var missing string
		for _, title := range r.Categories {
			id, err := lookup(title)
			if errors.Is(err, service.ErrCategoryNotFound) {
				missing = title
				break
			}
			if err != nil {
				return report, err
			}
			ids = append(ids, id)
		}
		if missing != "" {
			skip(SheetItems, r.Line, fmt.Sprintf("unknown category %q", missing))
			continue
		}

		if _, err := svc.Items.Create(ctx, service.ShopItemInput{
			Title:       r.Title,
			Description: r.Description,
			Price:       r.Price,
			CategoryIDs: ids,
		}); err != nil {
			return report, fmt.Errorf("failed to create shop item %q: %w", r.Title, err)
		}
		report.Items++
	}

	for _, r := range wb.Customers {
		_, err := svc.Customers.Create(ctx, service.CustomerInput{Name: r.Name, Surname: r.Surname, Email: r.Email})
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			skip(SheetCustomers, r.Line, fmt.Sprintf("email %s already registered", r.Email))
			continue
		}
		if err != nil {
			return report, fmt.Errorf("failed to create customer %s: %w", r.Email, err)
		}
		report.Customers++
	}

	logger.Info("Workbook imported", map[string]interface{}{
		"categories": report.Categories,
		"items":      report.Items,
		"customers":  report.Customers,
		"skipped":    len(report.Skipped),
	})
	return report, nil
}
