package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vachan-cat/cattrans/internal/config"
	"github.com/vachan-cat/cattrans/internal/model"
	projectRepo "github.com/vachan-cat/cattrans/internal/repository/project"
	sentenceRepo "github.com/vachan-cat/cattrans/internal/repository/sentence"
	"github.com/vachan-cat/cattrans/internal/service/project"
)

// projectCmd represents the project command
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project operations",
	Long:  `Operations for managing translation projects and their books.`,
}

func newProjectService(ctx context.Context) (project.Service, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	projects := projectRepo.NewRepository(dbPool)
	sentences := sentenceRepo.NewRepository(dbPool)
	return project.New(projects, sentences), dbPool.Close, nil
}

// projectCreateCmd creates a new project
var projectCreateCmd = &cobra.Command{
	Use:   "create [NAME] [SRC_LANG] [TRG_LANG]",
	Short: "Create a new translation project",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc, closeFn, err := newProjectService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := svc.Create(ctx, args[0], args[1], args[2], model.ProjectMeta{})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		return printJSON(p)
	},
}

// projectListCmd lists projects
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List translation projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc, closeFn, err := newProjectService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		projects, err := svc.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		return printJSON(projects)
	},
}

// projectAddUserCmd grants a user membership on a project
var projectAddUserCmd = &cobra.Command{
	Use:   "add-user [PROJECT_ID] [USER_ID] [ROLE]",
	Short: "Add a user to a project",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}
		userID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[1], err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		svc, closeFn, err := newProjectService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := svc.AddUser(ctx, projectID, userID, args[2]); err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}
		fmt.Println("user added")
		return nil
	},
}

// projectAddBookCmd ingests a parsed book file's {chapter, verse, text}
// records into a project's sentences.
var projectAddBookCmd = &cobra.Command{
	Use:   "add-book [PROJECT_ID] [BOOK_CODE] [BOOK_NUMBER] [RECORDS_FILE]",
	Short: "Ingest a book's records into a project",
	Long: `Reads a JSON array of {"chapter":N,"verse":N,"text":"..."} records
(the shape an external USFM/CSV parser produces) and inserts one fresh
sentence per record. Malformed rows are skipped and reported rather than
failing the whole ingest.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid project id %q: %w", args[0], err)
		}
		bookCode := args[1]
		bookNumber, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid book number %q: %w", args[2], err)
		}

		data, err := os.ReadFile(args[3])
		if err != nil {
			return fmt.Errorf("failed to read records file: %w", err)
		}

		var rows []struct {
			Chapter int    `json:"chapter"`
			Verse   int    `json:"verse"`
			Text    string `json:"text"`
		}
		if err := json.Unmarshal(data, &rows); err != nil {
			return fmt.Errorf("failed to parse records file: %w", err)
		}

		records := make([]model.SourceRecord, len(rows))
		for i, r := range rows {
			records[i] = model.SourceRecord{BookCode: bookCode, Chapter: r.Chapter, Verse: r.Verse, Text: r.Text}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		svc, closeFn, err := newProjectService(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		report, err := svc.AddBook(ctx, projectID, records, func(code string) (int, error) {
			return bookNumber, nil
		})
		if err != nil {
			return fmt.Errorf("failed to ingest book: %w", err)
		}
		return printJSON(report)
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddUserCmd)
	projectCmd.AddCommand(projectAddBookCmd)
}
