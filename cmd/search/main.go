package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/amosWeiskopf/pagewords/internal/apperrors"
	"github.com/amosWeiskopf/pagewords/internal/config"
	"github.com/amosWeiskopf/pagewords/internal/logger"
	"github.com/amosWeiskopf/pagewords/pkg/fetcher"
	"github.com/amosWeiskopf/pagewords/pkg/indexer"
	"github.com/amosWeiskopf/pagewords/pkg/reporter"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usageExample = `  search https://example.com 10
  search --format json https://example.com 5
  search --no-cache https://example.com -1`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <source> [<topN>]",
		Short: "Index the words and links of a web page",
		Long: `search fetches a single web page, extracts its hyperlinks and body text,
and prints the links followed by the topN words in alphabetical order (with
every position and capitalization) and the topN most frequent words.

Pages are cached on disk per URL; later runs for the same URL read the cache
instead of the network.`,
		Example:       usageExample,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runSearch,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.Usage()
		return apperrors.New(apperrors.ErrUsage, apperrors.ExitOK, err.Error())
	})

	flags := cmd.Flags()
	flags.String("config", "", "Config file path")
	flags.String("format", "text", "Report format (text, json, yaml, markdown, html)")
	flags.String("extract", "body", "Text to index: body (all visible text) or readable (main content only)")
	flags.String("cache-dir", ".pagewords-cache", "Directory for cached pages")
	flags.Bool("no-cache", false, "Neither read nor write the page cache")
	flags.Bool("refresh", false, "Fetch from the network even when a cached page exists")
	flags.Duration("timeout", 30*time.Second, "HTTP request timeout")
	flags.String("user-agent", "pagewords/1.0", "User agent for HTTP requests")
	flags.Bool("respect-robots", false, "Check robots.txt before fetching")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	if len(args) > 2 {
		cmd.Usage()
		return apperrors.Newf(apperrors.ErrUsage, apperrors.ExitOK, "expected at most 2 arguments, got %d", len(args))
	}
	source := args[0]

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	topN := cfg.Report.Top
	if len(args) == 2 {
		topN, err = strconv.Atoi(args[1])
		if err != nil {
			return apperrors.Newf(apperrors.ErrArgumentParse, apperrors.ExitFailure, "topN must be an integer, got %q", args[1])
		}
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	var cache *fetcher.Cache
	if cfg.Cache.Enabled {
		cache = fetcher.NewCache(afero.NewOsFs(), cfg.Cache.Dir)
	}
	f := fetcher.New(cache, fetcher.Options{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           cfg.Fetch.Timeout,
		RespectRobots:     cfg.Fetch.RespectRobots,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
		Refresh:           cfg.Cache.Refresh,
	})

	html, err := f.Fetch(cmd.Context(), source)
	if err != nil {
		return err
	}

	doc := indexer.New().Index(source, html, indexer.Options{Extraction: cfg.Index.Extraction})
	report := indexer.BuildReport(doc, topN)

	if err := reporter.New().Write(cmd.OutOrStdout(), report, cfg.Report.Format); err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}
	return nil
}

var negativeNumber = regexp.MustCompile(`^-\d+$`)

// positionalNegatives moves bare negative integers behind a "--" separator so
// that a topN like -1 is not parsed as a shorthand flag.
func positionalNegatives(args []string) []string {
	var rest, negatives []string
	for i, arg := range args {
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if negativeNumber.MatchString(arg) {
			negatives = append(negatives, arg)
			continue
		}
		rest = append(rest, arg)
	}
	if len(negatives) == 0 {
		return args
	}

	out := make([]string, 0, len(args)+1)
	sep := len(rest)
	for i, arg := range rest {
		if arg == "--" {
			sep = i
			break
		}
	}
	out = append(out, rest[:sep]...)
	out = append(out, "--")
	out = append(out, negatives...)
	if sep < len(rest) {
		out = append(out, rest[sep+1:]...)
	}
	return out
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(positionalNegatives(args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
