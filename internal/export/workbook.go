// Package export renders the dashboard into an .xlsx workbook.
package export

import (
	"fmt"
	"io"

	"product-dashboard/internal/analytics"
	"product-dashboard/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the generated workbook.
const (
	ProductsSheet = "Products"
	SummarySheet  = "Summary"
)

var productHeader = []interface{}{"ID", "Name", "Category", "Price", "Stock", "Status", "Description"}

// WriteWorkbook writes products, in the given order, and the summary as a
// two-sheet workbook.
func WriteWorkbook(w io.Writer, products []model.Product, summary model.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ProductsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := setRow(f, ProductsSheet, 1, productHeader); err != nil {
		return err
	}
	for i, p := range products {
		var stock interface{} = model.FormatStock(p.Stock)
		if p.Stock != nil {
			stock = *p.Stock
		}
		description := ""
		if p.Description != nil {
			description = *p.Description
		}

		row := []interface{}{p.ID, p.Name, p.Category, p.Price, stock, string(analytics.StatusOf(p)), description}
		if err := setRow(f, ProductsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ProductsSheet, "B", "B", 28); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(ProductsSheet, "G", "G", 60); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total products", summary.TotalProducts},
		{"Total stock", summary.TotalStock},
		{"Total value", summary.TotalValue},
		{"Low stock", summary.LowStockCount},
	}
	for i, row := range summaryRows {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
