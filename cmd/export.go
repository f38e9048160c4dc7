package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vachan-cat/cattrans/internal/config"
	"github.com/vachan-cat/cattrans/internal/export"
	"github.com/vachan-cat/cattrans/internal/model"
	languageRepo "github.com/vachan-cat/cattrans/internal/repository/language"
	projectRepo "github.com/vachan-cat/cattrans/internal/repository/project"
	sentenceRepo "github.com/vachan-cat/cattrans/internal/repository/sentence"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a project's drafts",
	Long:  `Render a project's current drafts in one of the supported export formats.`,
}

func loadProjectSentences(ctx context.Context, projectID int) (*model.Project, []model.Sentence, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	projects := projectRepo.NewRepository(dbPool)
	sentences := sentenceRepo.NewRepository(dbPool)

	p, err := projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load project: %w", err)
	}

	sentencePtrs, err := sentences.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sentences: %w", err)
	}
	plain := make([]model.Sentence, len(sentencePtrs))
	for i, sp := range sentencePtrs {
		plain[i] = *sp
	}
	return p, plain, nil
}

// exportUSFMCmd renders a project's drafts as USFM, one file per book.
var exportUSFMCmd = &cobra.Command{
	Use:   "usfm [PROJECT_ID] [BOOK_CODES_FILE] [OUT_DIR]",
	Short: "Export drafts as USFM, one file per book",
	Long: `BOOK_CODES_FILE is a JSON object mapping book number (as a string
key) to its USFM book code, e.g. {"1":"gen","2":"exo"}.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}

		codes, err := loadBookCodes(args[1])
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		_, sentences, err := loadProjectSentences(ctx, projectID)
		if err != nil {
			return err
		}

		books, err := export.USFM(sentences, func(book int) (string, error) {
			code, ok := codes[book]
			if !ok {
				return "", fmt.Errorf("no book code configured for book %d", book)
			}
			return code, nil
		})
		if err != nil {
			return fmt.Errorf("failed to export USFM: %w", err)
		}

		outDir := args[2]
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		var g errgroup.Group
		for book, content := range books {
			path := fmt.Sprintf("%s/%s.usfm", outDir, codes[book])
			content := content
			g.Go(func() error {
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		fmt.Printf("exported %d book(s) to %s\n", len(books), outDir)
		return nil
	},
}

// exportPlainTextCmd renders a project's drafts as plain text.
var exportPlainTextCmd = &cobra.Command{
	Use:   "plaintext [PROJECT_ID]",
	Short: "Export drafts as plain text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		_, sentences, err := loadProjectSentences(ctx, projectID)
		if err != nil {
			return err
		}

		fmt.Println(export.PlainText(sentences))
		return nil
	},
}

// exportAlignmentCmd renders a project's drafts as the JSON alignment
// export format.
var exportAlignmentCmd = &cobra.Command{
	Use:   "alignment [PROJECT_ID] [MODIFIED_UNIX_TS]",
	Short: "Export drafts as JSON alignment data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}
		modified, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid modified timestamp %q: %w", args[1], err)
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
		languages := languageRepo.NewRepository(dbPool)

		p, err := projects.GetByID(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		srcLang, err := languages.GetByCode(ctx, p.SrcLang)
		if err != nil {
			return fmt.Errorf("failed to load source language: %w", err)
		}
		trgLang, err := languages.GetByCode(ctx, p.TrgLang)
		if err != nil {
			return fmt.Errorf("failed to load target language: %w", err)
		}

		sentencePtrs, err := sentences.ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to list sentences: %w", err)
		}
		plain := make([]model.Sentence, len(sentencePtrs))
		for i, sp := range sentencePtrs {
			plain[i] = *sp
		}

		doc := export.BuildAlignment(plain, srcLang.Code, srcLang.Name, trgLang.Code, trgLang.Name, modified)
		return printJSON(doc)
	},
}

func loadBookCodes(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read book codes file: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse book codes file: %w", err)
	}
	codes := make(map[int]string, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("invalid book number key %q: %w", k, err)
		}
		codes[n] = v
	}
	return codes, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportUSFMCmd)
	exportCmd.AddCommand(exportPlainTextCmd)
	exportCmd.AddCommand(exportAlignmentCmd)
}
