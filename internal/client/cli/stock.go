package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shelfkeeper/shelfkeeper/internal/client/api"
)

// stockIn records a delivery: in <id> <qty> [notes...].
func (a *App) stockIn(ctx context.Context, args []string) {
	a.stock(ctx, args, true)
}

// stockOut records a sale or write-off: out <id> <qty> [notes...].
func (a *App) stockOut(ctx context.Context, args []string) {
	a.stock(ctx, args, false)
}

func (a *App) stock(ctx context.Context, args []string, in bool) {
	usage := "out <id> <qty> [notes]"
	if in {
		usage = "in <id> <qty> [notes]"
	}
	if len(args) < 2 {
		printlnFn("Usage:", usage)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid id:", args[0])
		return
	}
	qty, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Invalid quantity:", args[1])
		return
	}
	notes := strings.Join(args[2:], " ")

	var movement *api.StockMovement
	if in {
		movement, err = a.api.StockIn(ctx, id, qty, notes)
	} else {
		movement, err = a.api.StockOut(ctx, id, qty, notes)
	}
	if err != nil {
		printlnFn(err.Error())
		return
	}

	printlnFn(fmt.Sprintf("Recorded %s %d for product %d, new quantity %d",
		movement.Transaction.Type, qty, id, movement.NewQuantity))
	if movement.LowStock {
		printlnFn("Warning: product is low on stock.")
	}
}

func (a *App) lowStock(ctx context.Context) {
	products, err := a.api.LowStockProducts(ctx, 0)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	a.printProducts(products)
}

func (a *App) expiring(ctx context.Context, args []string) {
	days := 0
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			days = d
		}
	}
	products, err := a.api.ExpiringProducts(ctx, days)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	a.printProducts(products)
}

func (a *App) expired(ctx context.Context) {
	products, err := a.api.ExpiredProducts(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	a.printProducts(products)
}

func (a *App) stats(ctx context.Context) {
	stats, err := a.api.TransactionStats(ctx, "", "")
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn(fmt.Sprintf("Stock in:  %d movements, %d units", stats.TotalIn, stats.QuantityIn))
	printlnFn(fmt.Sprintf("Stock out: %d movements, %d units", stats.TotalOut, stats.QuantityOut))
}
