// Package main - stockctl CLI
//
// Usage:
//
//	go run ./cmd/stockctl migrate
//	go run ./cmd/stockctl activate AAPL
//	go run ./cmd/stockctl poll
package main

import (
	"os"

	"github.com/swiss1111/advanced-stock-price-checker/cmd/stockctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
