// Package main provides the entry point for the society management
// application. It starts a Fiber based JSON API backed by MySQL that covers
// plots, expenses, receivables, rate plans and the role/menu/action
// permission system the SPA frontend is driven by.
package main

import (
	"os"

	"github.com/GoSociety-Admin/GoSociety-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
