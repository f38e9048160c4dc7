package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vachan-cat/cattrans/internal/config"
	projectRepo "github.com/vachan-cat/cattrans/internal/repository/project"
	sentenceRepo "github.com/vachan-cat/cattrans/internal/repository/sentence"
	trmemoryRepo "github.com/vachan-cat/cattrans/internal/repository/trmemory"
	"github.com/vachan-cat/cattrans/internal/service/sentence"
)

// sentenceUseMemory toggles the tokenizer's memory-trie longest-match step
// for the tokenize preview command (spec.md §4.1 step 3, §5).
var sentenceUseMemory bool

// sentenceCmd represents the sentence command
var sentenceCmd = &cobra.Command{
	Use:   "sentence",
	Short: "Sentence and draft operations",
	Long:  `Operations for inspecting sentences and advancing a project's draft.`,
}

func newSentenceService(ctx context.Context) (sentence.Service, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sentences := sentenceRepo.NewRepository(dbPool)
	trmem := trmemoryRepo.NewRepository(dbPool)
	return sentence.New(sentences, trmem), dbPool.Close, nil
}

// sentenceGetCmd fetches one sentence by project and sentenceId
var sentenceGetCmd = &cobra.Command{
	Use:   "get [PROJECT_ID] [SENTENCE_ID]",
	Short: "Fetch one sentence",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}
		sentenceID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sentence id %q: %w", args[1], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc, closeFn, err := newSentenceService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		sent, err := svc.GetByID(ctx, projectID, sentenceID)
		if err != nil {
			return fmt.Errorf("failed to fetch sentence: %w", err)
		}
		return printJSON(sent)
	},
}

// sentenceListCmd lists every sentence in a project
var sentenceListCmd = &cobra.Command{
	Use:   "list [PROJECT_ID]",
	Short: "List a project's sentences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc, closeFn, err := newSentenceService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		sentences, err := svc.ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to list sentences: %w", err)
		}
		return printJSON(sentences)
	},
}

// sentenceProgressCmd reports the confirmed/suggestion/untranslated split
var sentenceProgressCmd = &cobra.Command{
	Use:   "progress [PROJECT_ID]",
	Short: "Report a project's translation progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc, closeFn, err := newSentenceService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		progress, err := svc.Progress(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to compute progress: %w", err)
		}
		return printJSON(progress)
	},
}

// sentenceTokenizeCmd previews a single sentence's token occurrences
// without mutating its draft, honoring the owning project's stopwords and
// punctuations (and, with --use-memory, its source language's translation
// memory) the same way auto-translate would.
var sentenceTokenizeCmd = &cobra.Command{
	Use:   "tokenize [PROJECT_ID] [SENTENCE_ID]",
	Short: "Preview a sentence's token occurrences",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}
		sentenceID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sentence id %q: %w", args[1], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		dbPool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		projects := projectRepo.NewRepository(dbPool)
		p, err := projects.GetByID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}

		sentences := sentenceRepo.NewRepository(dbPool)
		trmem := trmemoryRepo.NewRepository(dbPool)
		svc := sentence.New(sentences, trmem)

		tokens, err := svc.Tokenize(ctx, projectID, sentenceID, p.MetaData.Stopwords, p.MetaData.Punctuations, sentenceUseMemory, p.SrcLang)
		if err != nil {
			return fmt.Errorf("failed to tokenize sentence: %w", err)
		}
		return printJSON(tokens)
	},
}

// sentenceConfirmAllCmd retags every suggestion segment as confirmed
var sentenceConfirmAllCmd = &cobra.Command{
	Use:   "confirm-all [PROJECT_ID]",
	Short: "Confirm every pending suggestion in a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc, closeFn, err := newSentenceService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := svc.ConfirmAllSuggestions(ctx, projectID); err != nil {
			return fmt.Errorf("failed to confirm suggestions: %w", err)
		}
		fmt.Println("all suggestions confirmed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sentenceCmd)
	sentenceCmd.AddCommand(sentenceGetCmd)
	sentenceCmd.AddCommand(sentenceListCmd)
	sentenceCmd.AddCommand(sentenceTokenizeCmd)
	sentenceCmd.AddCommand(sentenceProgressCmd)
	sentenceCmd.AddCommand(sentenceConfirmAllCmd)

	sentenceTokenizeCmd.Flags().BoolVar(&sentenceUseMemory, "use-memory", false, "consume known translation-memory phrases before falling back to single words")
}
