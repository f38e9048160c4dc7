package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vachan-cat/cattrans/internal/autotranslate"
	"github.com/vachan-cat/cattrans/internal/config"
	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
	projectRepo "github.com/vachan-cat/cattrans/internal/repository/project"
	sentenceRepo "github.com/vachan-cat/cattrans/internal/repository/sentence"
	trmemRepo "github.com/vachan-cat/cattrans/internal/repository/trmemory"
	"github.com/vachan-cat/cattrans/internal/service/suggestion"
	"github.com/vachan-cat/cattrans/internal/trie"
)

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggestion-trie operations",
	Long:  `Operations for auto-translating drafts and maintaining the learned suggestion model.`,
}

// suggestCache is reused across subcommands within one process invocation
// so a rebuild immediately after a lookup (or vice versa) shares one
// warm trie instead of reloading it from disk twice.
var suggestCache = trie.NewCache()

// useMemory toggles the tokenizer's memory-trie longest-match step during
// auto-translate (spec.md §4.1 step 3, §5).
var useMemory bool

// newSuggestionService builds a Suggestion service. trmem may be nil for
// callers (rebuild, lookup) that never invoke AutoTranslate's memory-trie
// path; auto-translate passes a real repository so it can rebuild the
// memory trie from the current DB on every call (spec.md §5).
func newSuggestionService(trmem repository.TranslationMemoryRepository) (suggestion.Service, error) {
	root, err := config.GetSuggestionDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve suggestion data directory: %w", err)
	}
	return suggestion.New(root, suggestCache, trmem), nil
}

// suggestAutoTranslateCmd fills a project's untranslated segments from the
// learned suggestion model.
var suggestAutoTranslateCmd = &cobra.Command{
	Use:   "auto-translate [PROJECT_ID]",
	Short: "Auto-translate a project's untranslated segments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
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
		sentences := sentenceRepo.NewRepository(dbPool)
		trmem := trmemRepo.NewRepository(dbPool)

		p, err := projects.GetByID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}

		sentencePtrs, err := sentences.ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to list sentences: %w", err)
		}

		versions := make(map[int64]int, len(sentencePtrs))
		batch := make([]model.Sentence, len(sentencePtrs))
		for i, sp := range sentencePtrs {
			batch[i] = *sp
			versions[sp.SentenceID] = sp.Version
		}

		suggestSvc, err := newSuggestionService(trmem)
		if err != nil {
			return err
		}

		punctSet := make(map[rune]struct{}, len(p.MetaData.Punctuations))
		for _, r := range p.MetaData.Punctuations {
			punctSet[r] = struct{}{}
		}

		translated, err := suggestSvc.AutoTranslate(ctx, p.SrcLang, p.TrgLang, batch, autotranslate.Options{
			Stopwords:    p.MetaData.Stopwords,
			Punctuations: punctSet,
			UseMemory:    useMemory,
		})
		if err != nil {
			return fmt.Errorf("failed to auto-translate: %w", err)
		}

		var updated int
		for _, sent := range translated {
			if err := sentences.UpdateDraft(ctx, projectID, sent.SentenceID, sent.Draft, sent.DraftMeta, versions[sent.SentenceID]); err != nil {
				if apperrors.IsConflict(err) {
					continue // lost the optimistic-concurrency race; next run will retry this sentence
				}
				return fmt.Errorf("failed to persist draft for sentence %d: %w", sent.SentenceID, err)
			}
			updated++
		}

		fmt.Printf("auto-translated %d sentence(s)\n", updated)
		return nil
	},
}

// suggestRebuildCmd rebuilds the suggestion trie for a language pair
var suggestRebuildCmd = &cobra.Command{
	Use:   "rebuild [SRC_LANG] [TRG_LANG]",
	Short: "Rebuild the suggestion trie from on-disk training data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		svc, err := newSuggestionService(nil)
		if err != nil {
			return err
		}

		if err := svc.Rebuild(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to rebuild suggestion trie: %w", err)
		}
		fmt.Println("suggestion trie rebuilt")
		return nil
	},
}

// suggestLookupCmd ranks candidate translations for one token in context
var suggestLookupCmd = &cobra.Command{
	Use:   "lookup [SRC_LANG] [TRG_LANG] [INDEX] [WORD...]",
	Short: "Rank candidate translations for a token in context",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[2], err)
		}
		window := args[3:]

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		svc, err := newSuggestionService(nil)
		if err != nil {
			return err
		}

		ranked, err := svc.Suggest(ctx, args[0], args[1], index, window)
		if err != nil {
			return fmt.Errorf("failed to look up suggestions: %w", err)
		}
		return printJSON(ranked)
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.AddCommand(suggestAutoTranslateCmd)
	suggestCmd.AddCommand(suggestRebuildCmd)
	suggestCmd.AddCommand(suggestLookupCmd)

	suggestAutoTranslateCmd.Flags().BoolVar(&useMemory, "use-memory", false, "consume known translation-memory phrases during tokenization before falling back to the model")
}
