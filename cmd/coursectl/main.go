package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ekindev/coursesearch/internal/app/services"
	"github.com/ekindev/coursesearch/internal/bootstrap"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

const confirmPhrase = "I'm sure"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: coursectl <command> [flags]

Commands:
  load-catalog      Load a school's course catalog from CSV into the database
  index-embeddings  Generate embeddings for a school's stored courses
  bootstrap         Run the full pipeline (catalog + embeddings) for one or more schools

Run 'coursectl <command> -h' for command flags.
`)
}

func main() {
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "load-catalog":
		err = runLoadCatalog(ctx, os.Args[2:])
	case "index-embeddings":
		err = runIndexEmbeddings(ctx, os.Args[2:])
	case "bootstrap":
		err = runBootstrap(ctx, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// setup wires configuration, database, and services. The returned close
// function releases the connection pool.
func setup(assumeYes bool) (*bootstrap.Dependencies, func(), error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, nil, err
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr, confirmFunc(assumeYes))
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	return deps, database.Close, nil
}

// confirmFunc returns the confirmation capability for destructive operations.
// With -yes it agrees unconditionally; otherwise it prompts on stdin and only
// an exact confirmation phrase counts.
func confirmFunc(assumeYes bool) func(prompt string) bool {
	if assumeYes {
		return func(string) bool { return true }
	}
	return func(prompt string) bool {
		fmt.Printf("%s\nType %q to proceed: ", prompt, confirmPhrase)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		return strings.TrimSpace(line) == confirmPhrase
	}
}

func runLoadCatalog(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("load-catalog", flag.ExitOnError)
	school := fs.String("school", "", "school code (required), e.g. MSU")
	file := fs.String("file", "", "CSV path; defaults to <data_root>/<school>/<SCHOOL>_courses.csv")
	keep := fs.Bool("keep-existing", false, "append to existing rows instead of replacing them")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*school) == "" {
		fs.Usage()
		return fmt.Errorf("-school is required")
	}

	deps, closeFn, err := setup(*yes)
	if err != nil {
		return err
	}
	defer closeFn()

	drop := !*keep
	if drop {
		confirm := confirmFunc(*yes)
		if !confirm(fmt.Sprintf("This will replace all course rows for %s.", strings.ToUpper(*school))) {
			return fmt.Errorf("aborted: confirmation refused")
		}
	}

	count, err := deps.CatalogService.LoadCatalogFromFile(ctx, *school, *file, drop)
	if err != nil {
		return err
	}
	logger.Info().Str("school", strings.ToUpper(*school)).Int("courses", count).Msg("Catalog loaded")
	return nil
}

func runIndexEmbeddings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("index-embeddings", flag.ExitOnError)
	school := fs.String("school", "", "school code (required), e.g. MSU")
	keep := fs.Bool("keep-existing", false, "fail on existing embeddings instead of rebuilding them")
	limit := fs.Int("limit", 0, "cap the number of courses to embed (0 = all)")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*school) == "" {
		fs.Usage()
		return fmt.Errorf("-school is required")
	}

	deps, closeFn, err := setup(*yes)
	if err != nil {
		return err
	}
	defer closeFn()

	drop := !*keep
	if drop {
		confirm := confirmFunc(*yes)
		if !confirm(fmt.Sprintf("This will delete existing embeddings for %s.", strings.ToUpper(*school))) {
			return fmt.Errorf("aborted: confirmation refused")
		}
	}

	count, err := deps.IndexerService.IndexEmbeddings(ctx, *school, drop, *limit)
	if err != nil {
		return err
	}
	logger.Info().Str("school", strings.ToUpper(*school)).Int("embeddings", count).Msg("Embeddings generated")
	return nil
}

func runBootstrap(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bootstrap", flag.ExitOnError)
	schools := fs.String("schools", "", "comma-separated school codes (required), e.g. MSU,UU")
	keepCourses := fs.Bool("keep-courses", false, "append to existing catalog rows instead of replacing them")
	keepEmbeddings := fs.Bool("keep-embeddings", false, "fail on existing embeddings instead of rebuilding them")
	limit := fs.Int("limit", 0, "cap courses embedded per school (0 = all)")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := strings.Split(*schools, ",")

	deps, closeFn, err := setup(*yes)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := deps.IngestService.Bootstrap(ctx, list, services.BootstrapOptions{
		DropCourses:    !*keepCourses,
		DropEmbeddings: !*keepEmbeddings,
		EmbeddingLimit: *limit,
	})
	if err != nil {
		return err
	}
	logger.Info().
		Int("courses", result.CoursesLoaded).
		Int("embeddings", result.EmbeddingsGenerated).
		Msg("Bootstrap complete")
	return nil
}
