package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shelfkeeper/shelfkeeper/internal/client/api"
	"github.com/shelfkeeper/shelfkeeper/internal/server/models"
)

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn("Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid id:", args[0])
		return 0, false
	}
	return id, true
}

func formatProduct(p *models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s [%s] price=%.2f qty=%d", p.ID, p.Name, p.SKU, p.Price, p.Quantity)
	if p.Barcode != nil {
		fmt.Fprintf(&b, " barcode=%s", *p.Barcode)
	}
	if p.CategoryName != nil {
		fmt.Fprintf(&b, " category=%s", *p.CategoryName)
	}
	if p.ExpiryDate != nil {
		fmt.Fprintf(&b, " expires=%s", p.ExpiryDate.Format("2006-01-02"))
	}
	if p.IsLowStock() {
		b.WriteString(" LOW")
	}
	return b.String()
}

func (a *App) printProducts(products []*models.Product) {
	if len(products) == 0 {
		printlnFn("No products found.")
		return
	}
	for _, p := range products {
		printlnFn(formatProduct(p))
	}
}

// listProducts shows one page of the catalog; "list 2" shows page 2.
func (a *App) listProducts(ctx context.Context, args []string) {
	opts := api.ListProductsOptions{}
	if len(args) > 0 {
		if page, err := strconv.Atoi(args[0]); err == nil {
			opts.Page = page
		}
	}

	products, pagination, err := a.api.ListProducts(ctx, opts)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	a.printProducts(products)
	if pagination != nil && pagination.Pages > 1 {
		printlnFn(fmt.Sprintf("Page %d of %d (%d products)", pagination.CurrentPage, pagination.Pages, pagination.Total))
	}
}

func (a *App) showProduct(ctx context.Context, args []string) {
	id, ok := parseID(args, "show <id>")
	if !ok {
		return
	}
	product, err := a.api.GetProduct(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn(formatProduct(product))
}

// addProduct interactively collects the product fields. Empty answers leave
// optional fields unset.
func (a *App) addProduct(ctx context.Context) {
	input := &api.ProductInput{}

	name, err := getSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	input.Name = name

	sku, err := getSimpleText(a.reader, "SKU", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	input.SKU = sku

	priceText, err := getSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		printlnFn("Invalid price:", priceText)
		return
	}
	input.Price = price

	qtyText, err := getSimpleText(a.reader, "Initial quantity", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	if qtyText != "" {
		qty, err := strconv.ParseInt(qtyText, 10, 64)
		if err != nil {
			printlnFn("Invalid quantity:", qtyText)
			return
		}
		input.Quantity = qty
	}

	expiry, err := getSimpleText(a.reader, "Expiry date (YYYY-MM-DD, empty for none)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	if expiry != "" {
		input.ExpiryDate = &expiry
	}

	product, err := a.api.CreateProduct(ctx, input)
	if err != nil {
		printlnFn("Create failed:", err.Error())
		return
	}
	printlnFn("Created:", formatProduct(product))
}

func (a *App) deleteProduct(ctx context.Context, args []string) {
	id, ok := parseID(args, "delete <id>")
	if !ok {
		return
	}
	if err := a.api.DeleteProduct(ctx, id); err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn("Deleted product", id)
}

func (a *App) findProducts(ctx context.Context, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: find <text>")
		return
	}
	products, _, err := a.api.ListProducts(ctx, api.ListProductsOptions{Search: strings.Join(args, " ")})
	if err != nil {
		printlnFn(err.Error())
		return
	}
	a.printProducts(products)
}

func (a *App) scanBarcode(ctx context.Context, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: scan <ean13>")
		return
	}
	product, err := a.api.SearchBarcode(ctx, args[0])
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn(formatProduct(product))
}

func (a *App) barcodeImage(ctx context.Context, args []string) {
	id, ok := parseID(args, "barcode <id>")
	if !ok {
		return
	}
	url, err := a.api.BarcodeImageURL(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn(url)
}
