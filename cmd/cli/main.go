package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahin/ledgercore/internal/infrastructure/config"
	"github.com/mahin/ledgercore/internal/infrastructure/logger"
	"github.com/mahin/ledgercore/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgercore-cli",
		Short: "LedgerCore CLI tool",
		Long:  `A command line interface for interacting with the LedgerCore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LedgerCore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Journal commands
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal operations",
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare every cached balance against the journal",
		Run: func(cmd *cobra.Command, args []string) {
			reconcile()
		},
	}
	journalCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(journalCmd)

	// Conversion command
	var amount, from, to string
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount between currencies using stored rates",
		Run: func(cmd *cobra.Command, args []string) {
			convert(amount, from, to)
		},
	}
	convertCmd.Flags().StringVar(&amount, "amount", "", "Amount to convert")
	convertCmd.Flags().StringVar(&from, "from", "", "Source currency code")
	convertCmd.Flags().StringVar(&to, "to", "", "Target currency code")
	convertCmd.MarkFlagRequired("amount")
	convertCmd.MarkFlagRequired("from")
	convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)

	// Report command
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the total balance across all accounts in the base currency",
		Run: func(cmd *cobra.Command, args []string) {
			summary()
		},
	}
	rootCmd.AddCommand(summaryCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			migrate(false)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Run: func(cmd *cobra.Command, args []string) {
			migrate(true)
		},
	})
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func reconcile() {
	body := post("/api/v1/journal/reconcile", nil)

	var results []struct {
		AccountID    string `json:"account_id"`
		Difference   string `json:"difference"`
		IsReconciled bool   `json:"is_reconciled"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	drifted := 0
	for _, r := range results {
		if !r.IsReconciled {
			drifted++
			fmt.Printf("DRIFT %s: difference %s\n", r.AccountID, r.Difference)
		}
	}

	if drifted == 0 {
		fmt.Printf("All %d accounts reconciled\n", len(results))
		return
	}

	fmt.Printf("%d of %d accounts drifted\n", drifted, len(results))
	os.Exit(1)
}

func convert(amount, from, to string) {
	q := url.Values{}
	q.Set("amount", amount)
	q.Set("from", from)
	q.Set("to", to)

	body := get("/api/v1/rates/convert?" + q.Encode())

	var result struct {
		Converted string `json:"converted"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s %s = %s %s\n", amount, from, result.Converted, to)
}

func summary() {
	body := get("/api/v1/reports/total-balance")

	var result struct {
		BaseCurrency     string   `json:"base_currency"`
		Total            string   `json:"total"`
		MissingRatePairs []string `json:"missing_rate_pairs"`
		ExcludedAmount   string   `json:"excluded_amount"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Total: %s %s\n", result.Total, result.BaseCurrency)
	if len(result.MissingRatePairs) > 0 {
		fmt.Printf("INCOMPLETE: %s excluded, missing rates: %v\n", result.ExcludedAmount, result.MissingRatePairs)
	}
}

func migrate(down bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})

	if down {
		err = postgres.RunMigrationsDown(log, cfg.DatabaseURL, cfg.MigrationsPath)
	} else {
		err = postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath)
	}
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func get(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return readOK(resp)
}

func post(path string, payload io.Reader) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", payload)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return readOK(resp)
}

func readOK(resp *http.Response) []byte {
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}
	return body
}
