package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"cotchat/agent"
	"cotchat/completion"
	"cotchat/config"
	"cotchat/model"
	"cotchat/provider"
	"cotchat/reasoning"
	"cotchat/trace"
	"cotchat/ui"
)

const Version = "v0.1.0"

func main() {
	plain := flag.Bool("plain", false, "use the line-by-line chat loop even on a terminal")
	showVersion := flag.Bool("version", false, "print the version and exit")
	listModels := flag.Bool("list-models", false, "print the provider's models and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("cotchat", Version)
		return
	}

	interactive := !*plain &&
		isatty.IsTerminal(os.Stdin.Fd()) &&
		isatty.IsTerminal(os.Stdout.Fd())

	cfg, err := config.Load()
	if err != nil {
		fatal(interactive, "Configuration Error", err)
	}

	// Console logging would tear through the alt screen.
	var console io.Writer
	if cfg.Debug.Console && !interactive {
		console = os.Stderr
	}
	closeLog := config.InitDebugLog(cfg.DataDir(), cfg.Debug.Enabled, console)
	defer closeLog()

	p, err := provider.NewProvider(provider.Config{
		Type:    provider.MapProviderIDToType(cfg.Provider.Type),
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
		APIKey:  cfg.Provider.APIKey,
	})
	if err != nil {
		fatal(interactive, "Provider Error", err)
	}

	if *listModels {
		printModels(p)
		return
	}

	traceKind := trace.KindNone
	if cfg.Debug.Enabled {
		traceKind = cfg.Debug.Trace
	}
	tracer, err := trace.Open(traceKind, cfg.TraceDir())
	if err != nil {
		fatal(interactive, "Trace Error", err)
	}
	defer func() {
		if err := tracer.Close(); err != nil && config.DebugLog != nil {
			config.DebugLog.Warn("failed to close tracer", "error", err)
		}
	}()

	client := completion.NewClient(p,
		completion.WithSampling(cfg.Sampling),
		completion.WithTracer(tracer),
		completion.WithProviderName(cfg.Provider.Type),
	)

	opts := []reasoning.Option{
		reasoning.WithModel(cfg.Model()),
		reasoning.WithRetryPolicy(reasoning.RetryPolicy{
			MaxAttempts:     cfg.Reasoning.Retry.MaxAttempts,
			InitialInterval: cfg.Reasoning.Retry.InitialInterval,
			MaxInterval:     cfg.Reasoning.Retry.MaxInterval,
		}),
	}

	var relay *ui.StepRelay
	if cfg.Debug.Enabled {
		if interactive {
			relay = ui.NewStepRelay()
			opts = append(opts, reasoning.WithStepFunc(relay.Send))
		} else {
			opts = append(opts, reasoning.WithStepFunc(ui.PrintSteps(os.Stderr)))
		}
	}

	strategy, err := reasoning.New(cfg.Reasoning.Strategy, client, opts...)
	if err != nil {
		fatal(interactive, "Configuration Error", err)
	}
	a := agent.New(strategy)

	if config.DebugLog != nil {
		config.DebugLog.Info("session starting",
			"version", Version,
			"provider", cfg.Provider.Type,
			"model", p.GetModel(),
			"strategy", strategy.Name(),
			"interactive", interactive,
		)
	}

	title := fmt.Sprintf("cotchat | %s/%s | %s", cfg.Provider.Type, p.GetModel(), strategy.Name())

	if !interactive {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		welcome := fmt.Sprintf("%s. Type 'exit' to quit.", title)
		if err := ui.NewLineDriver(a, os.Stdin, os.Stdout, welcome).Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	program := tea.NewProgram(
		ui.NewAppView(a, ui.AppOptions{Title: title, Relay: relay}),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running cotchat: %v\n", err)
		os.Exit(1)
	}
}

func printModels(p model.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	models, err := p.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing models: %v\n", err)
		os.Exit(1)
	}
	for _, m := range models {
		marker := " "
		if m.Name == p.GetModel() {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, m.Name)
	}
}

// fatal reports a startup error and exits. On a terminal it uses the error
// modal so the message is not lost behind the alt screen.
func fatal(interactive bool, title string, err error) {
	if interactive {
		p := tea.NewProgram(ui.NewErrorModal(title, err.Error()), tea.WithAltScreen())
		if _, runErr := p.Run(); runErr != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
		}
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
	os.Exit(1)
}
