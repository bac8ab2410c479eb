// Command userdemo clears the user collection and walks through the basic
// create, read and update operations, printing each result.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arllen133/userstore"
)

func main() {
	cfg, err := userstore.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(context.Background(), os.Stdout, cfg, logger); err != nil {
		logger.Error("demo failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, cfg userstore.Config, logger *slog.Logger) error {
	repo, err := userstore.Open(ctx, cfg, userstore.WithLogger(logger))
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	// Clean collection for demo
	if _, err := repo.Clear(ctx); err != nil {
		return err
	}

	fmt.Fprintln(w, "=== CREATE ===")
	aliceID, err := repo.CreateUser(ctx, "Alice", "alice@example.com", 25)
	if err != nil {
		return err
	}
	bobID, err := repo.CreateUser(ctx, "Bob", "bob@example.com", 30)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Inserted Alice with _id:", aliceID)
	fmt.Fprintln(w, "Inserted Bob with _id:", bobID)

	fmt.Fprintln(w, "\n=== READ ===")
	user, err := repo.GetUserByID(ctx, aliceID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "User 1:", describe(user))
	user, err = repo.GetUserByName(ctx, "Alice")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "User 1:", describe(user))

	fmt.Fprintln(w, "users older equal 23 age")
	users, err := repo.GetUsersByMinAge(ctx, 23)
	if err != nil {
		return err
	}
	for i, u := range users {
		fmt.Fprintf(w, " #%d  %s\n", i+1, u)
	}

	fmt.Fprintln(w, "\n=== UPDATE ===")
	modified, err := repo.UpdateUserEmail(ctx, "Alice", "alice.new@example.com")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Modified docs:", modified)
	user, err = repo.GetUserByID(ctx, aliceID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Alice after email update:", describe(user))
	return nil
}

func describe(u *userstore.User) string {
	if u == nil {
		return "not found"
	}
	return u.String()
}
