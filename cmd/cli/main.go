package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	postgresRepo "github.com/finlane/payledger/internal/adapter/repository/postgres"
	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/infrastructure/postgres"
	"github.com/finlane/payledger/internal/usecase"
)

var (
	databaseURL    string
	migrationsPath string
	baseURL        string
	token          string
	timeout        time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "payledger-cli",
		Short: "PayLedger admin tool",
		Long:  `A command line interface for operating a PayLedger deployment.`,
	}

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "migrations", "migrations", "Path to migration files")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PayLedger API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PAYLEDGER_TOKEN"), "Bearer token for API commands")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			fail(postgres.RunMigrations(databaseURL, migrationsPath))
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			fail(postgres.RunMigrationsDown(databaseURL, migrationsPath))
		},
	})
	rootCmd.AddCommand(migrateCmd)

	// User commands
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User directory operations",
	}

	var (
		username string
		password string
		role     string
	)
	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user directly in the database",
		Long:  `Creates a user against the database, bypassing the API. Use it to bootstrap the first admin account.`,
		Run: func(cmd *cobra.Command, args []string) {
			createUser(username, password, role)
		},
	}
	createUserCmd.Flags().StringVar(&username, "username", "", "Username")
	createUserCmd.Flags().StringVar(&password, "password", "", "Password")
	createUserCmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "Role (admin or viewer)")
	createUserCmd.MarkFlagRequired("username")
	createUserCmd.MarkFlagRequired("password")
	userCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(userCmd)

	// Stats command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print the aggregate overview via the API",
		Run: func(cmd *cobra.Command, args []string) {
			printStats()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fail(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createUser(username, password, role string) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, databaseURL, 2, 1, timeout)
	fail(err)
	defer pool.Close()

	userUC := usecase.NewUserUseCase(postgresRepo.NewUserRepository(pool))
	user, err := userUC.Create(ctx, usecase.CreateUserInput{
		Username: username,
		Password: password,
		Role:     domain.Role(role),
	})
	fail(err)

	fmt.Printf("created user %d (%s, %s)\n", user.ID, user.Username, user.Role)
}

func printStats() {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+"/payments/stats", nil)
	fail(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	fail(err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "stats request failed (status %d)\n%s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	fail(json.Unmarshal(body, &result))

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
