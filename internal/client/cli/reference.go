package cli

import (
	"context"
	"fmt"
)

func (a *App) listCategories(ctx context.Context) {
	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	if len(categories) == 0 {
		printlnFn("No categories.")
		return
	}

	for _, c := range categories {
		line := fmt.Sprintf("#%d %s (%d products)", c.ID, c.Name, c.ProductCount)
		if c.Description != "" {
			line += " - " + c.Description
		}
		printlnFn(line)
	}
}

func (a *App) listSuppliers(ctx context.Context) {
	suppliers, err := a.api.ListSuppliers(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	if len(suppliers) == 0 {
		printlnFn("No suppliers.")
		return
	}

	for _, s := range suppliers {
		line := fmt.Sprintf("#%d %s", s.ID, s.Name)
		if s.Contact != "" {
			line += " contact=" + s.Contact
		}
		if s.Email != "" {
			line += " email=" + s.Email
		}
		printlnFn(line)
	}
}
