package cli

import (
	"context"
	"os"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// register prompts for account details and creates a new staff account.
func (a *App) register(ctx context.Context) {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	if _, err := a.api.Register(ctx, userName, email, string(password), ""); err != nil {
		printlnFn("Registration failed:", err.Error())
		return
	}

	printlnFn("Account created, you can log in now.")
}

// login prompts for credentials and starts an authenticated session.
func (a *App) login(ctx context.Context) {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Login(ctx, userName, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return
	}

	a.userName = user.Username
	printlnFn("Logged in as", user.Username)
}

func (a *App) logout(ctx context.Context) {
	if err := a.api.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return
	}
	a.userName = ""
	printlnFn("Logged out.")
}

func (a *App) whoami(ctx context.Context) {
	user, err := a.api.Profile(ctx)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	printlnFn(user.Username, "-", user.Role)
}
