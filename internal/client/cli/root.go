package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return ""
}

// Root runs the interactive command loop until EOF or "exit".
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to ShelfKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("shelf %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami(ctx)
		case "l", "list":
			a.listProducts(ctx, args)
		case "show":
			a.showProduct(ctx, args)
		case "add":
			a.addProduct(ctx)
		case "delete":
			a.deleteProduct(ctx, args)
		case "find":
			a.findProducts(ctx, args)
		case "scan":
			a.scanBarcode(ctx, args)
		case "barcode":
			a.barcodeImage(ctx, args)
		case "in":
			a.stockIn(ctx, args)
		case "out":
			a.stockOut(ctx, args)
		case "low":
			a.lowStock(ctx)
		case "expiring":
			a.expiring(ctx, args)
		case "expired":
			a.expired(ctx)
		case "categories":
			a.listCategories(ctx)
		case "suppliers":
			a.listSuppliers(ctx)
		case "stats":
			a.stats(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.isLoggedIn() {
		printlnFn("Available commands: (l)ist, show, add, delete, find, scan, barcode, in, out, low, expiring, expired, categories, suppliers, stats, whoami, logout, exit")
	} else {
		printlnFn("Available commands: register, login, exit")
	}
}
