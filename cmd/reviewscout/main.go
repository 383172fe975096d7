package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/alan-mat/reviewscout/internal/fetcher"
	"github.com/alan-mat/reviewscout/internal/llm"
	"github.com/alan-mat/reviewscout/internal/provider"
	"github.com/alan-mat/reviewscout/internal/review"

	_ "github.com/alan-mat/reviewscout/internal/provider/cohere"
	_ "github.com/alan-mat/reviewscout/internal/provider/gemini"
	_ "github.com/alan-mat/reviewscout/internal/provider/openai"
)

const (
	ProgramName   = "reviewscout"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/alan-mat/reviewscout"
)

type args struct {
	Topic    string `arg:"positional" help:"company or topic to search reviews for, read from stdin when omitted"`
	Config   string `arg:"--config,-c" help:"path to a YAML config file"`
	Provider string `arg:"--provider,-p" help:"model provider: gemini, openai or cohere"`
	Model    string `arg:"--model,-m" help:"model name, defaults to the provider's model"`
	OutDir   string `arg:"--out-dir,-o" help:"existing directory to write the result file to"`
	Validate bool   `arg:"--validate" help:"check the result against the expected schema and report problems"`
	Verbose  bool   `arg:"--verbose,-v" help:"enable debug logging"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Description() string {
	return "Asks a search-enabled language model for real negative reviews about a company\n" +
		"and saves them as JSON to reviews_<topic>.json."
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: ProgramName}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger.With("run", uuid.NewString()))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "err", err)
	}

	conf, err := loadConfig(args)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	gen, err := newGenerator(ctx, conf)
	if err != nil {
		log.Fatalf("failed to initialize model client: %v", err)
	}

	if err := run(ctx, conf, gen, args.Topic, os.Stdin, os.Stdout); err != nil {
		slog.Error("review search failed", "err", err)
		os.Exit(1)
	}
}

func newGenerator(ctx context.Context, conf *config) (llm.Generator, error) {
	p, err := provider.Lookup(conf.Provider)
	if err != nil {
		return nil, err
	}

	keyEnv := conf.APIKeyEnv
	if keyEnv == "" {
		keyEnv = p.APIKeyEnv
	}

	return provider.New(ctx, conf.Provider, provider.Config{
		APIKey:    os.Getenv(keyEnv),
		APIKeyEnv: keyEnv,
		BaseURL:   conf.BaseURL,
		Model:     conf.Model,
	})
}

// run performs one search for topic, asking for it on stdin when empty,
// prints the result and writes it to the output directory.
func run(ctx context.Context, conf *config, gen llm.Generator, topic string, stdin io.Reader, stdout io.Writer) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		var err error
		topic, err = readTopic(stdin, stdout)
		if err != nil {
			return err
		}
	}
	if topic == "" {
		return fetcher.ErrEmptyTopic
	}

	if conf.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, conf.timeout)
		defer cancel()
	}

	f := fetcher.New(gen,
		fetcher.WithModel(conf.Model),
		fetcher.WithValidation(conf.Validate),
	)

	out, err := f.Fetch(ctx, topic)
	if err != nil {
		return err
	}

	if err := printOutcome(stdout, out); err != nil {
		return err
	}

	path, err := review.WriteFile(conf.OutputDir, topic, out.Result)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nResult saved to file: %s\n", path)

	return nil
}

func readTopic(stdin io.Reader, stdout io.Writer) (string, error) {
	fmt.Fprint(stdout, "Enter the company name to search reviews for: ")

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read topic: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printOutcome(w io.Writer, out *fetcher.Outcome) error {
	data, err := out.Result.Indent(review.ConsoleIndent)
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	fmt.Fprintln(w, "\n--- SEARCH RESULT ---")
	fmt.Fprintln(w, string(data))

	if len(out.Sources) > 0 {
		fmt.Fprintln(w, "\n--- SOURCES ---")
		for _, s := range out.Sources {
			fmt.Fprintf(w, " - %s (%s)\n", s.Title, s.URI)
		}
	}

	return nil
}
