package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/law-manager/lawauth/internal/cmd"
)

// @title        Law Manager Auth API
// @version      1.0
// @description  Authentication bridge for Law Manager. Accepts a username or an email at login and returns a stable user and session contract.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
