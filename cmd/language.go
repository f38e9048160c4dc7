package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vachan-cat/cattrans/internal/config"
	languageRepo "github.com/vachan-cat/cattrans/internal/repository/language"
	"github.com/vachan-cat/cattrans/internal/service/language"
)

// languageCmd represents the language command
var languageCmd = &cobra.Command{
	Use:   "language",
	Short: "Language operations",
	Long:  `Operations for registering and listing known languages.`,
}

func newLanguageService(ctx context.Context) (language.Service, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := languageRepo.NewRepository(dbPool)
	return language.New(repo), dbPool.Close, nil
}

// languageAddCmd registers a new language
var languageAddCmd = &cobra.Command{
	Use:   "add [CODE] [NAME]",
	Short: "Register a new language",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc, closeFn, err := newLanguageService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		lang, err := svc.Create(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to create language: %w", err)
		}

		result, err := json.MarshalIndent(lang, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		fmt.Println(string(result))
		return nil
	},
}

// languageListCmd lists known languages
var languageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc, closeFn, err := newLanguageService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		langs, err := svc.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list languages: %w", err)
		}

		result, err := json.MarshalIndent(langs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		fmt.Println(string(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languageCmd)
	languageCmd.AddCommand(languageAddCmd)
	languageCmd.AddCommand(languageListCmd)
}
