package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"code-showcase/cmd/showcase/app"
	"code-showcase/cmd/showcase/di"
	"code-showcase/cmd/showcase/server"
	"code-showcase/internal/fetch"
	"code-showcase/internal/usecase/showcase"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for showcase.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Directory containing app.env." env:"CONFIG_PATH" default:"."`

	Hello   HelloCmd   `cmd:"" default:"1" help:"Print the greeting and the tenth Fibonacci term."`
	Fib     FibCmd     `cmd:"" help:"Print the n-th Fibonacci term."`
	Greet   GreetCmd   `cmd:"" help:"Print a person's greeting."`
	Squares SquaresCmd `cmd:"" help:"Print the squares and even squares of [0, 10)."`
	Fetch   FetchCmd   `cmd:"" help:"Fetch documents relative to the configured base URL."`
	Serve   ServeCmd   `cmd:"" help:"Serve the sample data document over HTTP."`
}

// HelloCmd prints the two banner lines.
type HelloCmd struct{}

// Run executes the hello command.
func (c *HelloCmd) Run(a *app.App) error {
	for _, line := range a.Container.Showcase.Banner() {
		if _, err := fmt.Fprintln(a.Out, line); err != nil {
			return err
		}
	}
	return nil
}

// FibCmd prints a single Fibonacci term.
type FibCmd struct {
	N int `arg:"" help:"Index of the term."`
}

// Run executes the fib command.
func (c *FibCmd) Run(a *app.App) error {
	_, err := fmt.Fprintln(a.Out, showcase.FormatFibonacci(a.Container.Showcase.Fibonacci(c.N)))
	return err
}

// GreetCmd prints the greeting of a person built from its arguments.
type GreetCmd struct {
	Name  string `arg:"" help:"Display name."`
	Email string `arg:"" optional:"" help:"Email address."`
}

// Run executes the greet command.
func (c *GreetCmd) Run(a *app.App) error {
	resp := a.Container.Showcase.Greet(showcase.GreetRequest{Name: c.Name, Email: c.Email})
	_, err := fmt.Fprintln(a.Out, resp.Greeting)
	return err
}

// SquaresCmd prints both derived sequences.
type SquaresCmd struct{}

// Run executes the squares command.
func (c *SquaresCmd) Run(a *app.App) error {
	seqs := a.Container.Showcase.Sequences()
	_, err := fmt.Fprintf(a.Out, "squares = %v\neven_squares = %v\n", seqs.Squares, seqs.EvenSquares)
	return err
}

// FetchCmd fetches one or more documents and prints them as indented JSON.
type FetchCmd struct {
	Paths   []string `arg:"" optional:"" help:"Relative paths to fetch (default ${default_path})."`
	BaseURL string   `name:"base-url" help:"Override FETCH_BASE_URL."`
}

// Run executes the fetch command.
func (c *FetchCmd) Run(a *app.App) error {
	client := a.Container.FetchClient
	if c.BaseURL != "" {
		cfg := *a.Config
		cfg.Fetch.BaseURL = c.BaseURL
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
		var err error
		if client, err = di.NewFetchClient(&cfg, a.Logger); err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
	}

	paths := c.Paths
	if len(paths) == 0 {
		paths = []string{fetch.DataPath}
	}

	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	docs, err := client.FetchAll(ctx, paths...)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("fetch: encoding output: %w", err)
		}
	}
	return nil
}

// ServeCmd runs the sample data server until interrupted.
type ServeCmd struct {
	Port string `help:"Override HTTP_PORT."`
}

// Run executes the serve command.
func (c *ServeCmd) Run(a *app.App) error {
	port := a.Config.App.HTTPPort
	if c.Port != "" {
		port = c.Port
	}

	srv := server.New(
		a.Container.DataHandler,
		a.Config.Logger.ServiceName,
		":"+port,
		time.Duration(a.Config.App.ShutdownTimeoutSeconds)*time.Second,
		a.Logger,
	)

	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	return srv.Run(ctx)
}

// newParser builds the kong parser for cli, writing help and usage to stdout.
func newParser(cli *CLI, stdout io.Writer, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("showcase"),
		kong.Description("Small standalone samples: recursion, fetching, a value type and derived sequences."),
		kong.Vars{
			"version":      version + " " + commit + " " + date,
			"default_path": fetch.DataPath,
		},
		kong.Writers(stdout, os.Stderr),
		kong.UsageOnError(),
	}
	return kong.New(cli, append(opts, options...)...)
}

// run parses args and executes the selected command.
func run(args []string, stdout io.Writer, options ...kong.Option) (err error) {
	var cli CLI
	parser, err := newParser(&cli, stdout, options...)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a, err := app.New(cli.Config, stdout)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()

	return kctx.Run(a)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "showcase:", err)
		os.Exit(1)
	}
}
