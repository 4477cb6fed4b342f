package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raida-labs/diag-raida-api/internal/client"
	"github.com/raida-labs/diag-raida-api/internal/tui"
)

var (
	serverURL    string
	studentID    string
	numQuestions int
)

var rootCmd = &cobra.Command{
	Use:   "diag-raida",
	Short: "Terminal client for the Diag-Raida diagnostic service",
	Long:  "Diag-Raida — passe un test diagnostique de mathématiques dans le terminal et reçois des recommandations personnalisées.",
	RunE: func(cmd *cobra.Command, args []string) error {
		api := client.New(serverURL)
		return tui.Run(api, studentID, numQuestions)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the diagnostic API")
	rootCmd.Flags().StringVar(&studentID, "student", "", "Student identifier to prefill")
	rootCmd.Flags().IntVar(&numQuestions, "questions", 5, "Number of questions to request")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
