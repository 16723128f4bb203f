package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankbook-cli",
		Short: "Bankbook CLI tool",
		Long:  `A command line interface for interacting with the Bankbook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bankbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	accountGetCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show an account with its current balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	}

	accountListCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/")
		},
	}

	accountStatementCmd := &cobra.Command{
		Use:   "statement [id]",
		Short: "Print an account's ledger in statement order",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/transactions")
		},
	}

	accountCmd.AddCommand(accountGetCmd, accountListCmd, accountStatementCmd)
	rootCmd.AddCommand(accountCmd)

	// Check commands
	checksCmd := &cobra.Command{
		Use:   "checks",
		Short: "Check operations",
	}

	var withinDays int
	checksUpcomingCmd := &cobra.Command{
		Use:   "upcoming [account-id]",
		Short: "List received checks due soon",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("/api/v1/accounts/%s/checks/upcoming?within_days=%d", args[0], withinDays))
		},
	}
	checksUpcomingCmd.Flags().IntVar(&withinDays, "within-days", 7, "Due-date window in days")

	checksCmd.AddCommand(checksUpcomingCmd)
	rootCmd.AddCommand(checksCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
