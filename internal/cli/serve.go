package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/valence"
	"github.com/aretw0/valence/internal/presentation/tui"
	api "github.com/aretw0/valence/pkg/adapters/http"
	"github.com/aretw0/valence/pkg/domain"
	"github.com/aretw0/valence/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr       string
	DocumentID string
	Quiet      bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the editing HTTP server",
		Long: `Opens a document from the configured store and exposes it over a JSON API
with undo/redo, awareness queries, an SSE event stream and Prometheus metrics.
A document that does not exist yet starts empty and is created on first save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.Addr = opts.Config.HTTP.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&opts.DocumentID, "doc", "untitled", "document id to open")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "do not print the banner")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions, cmd *cobra.Command) error {
	logger := opts.Logger

	store, closeStore, err := openStore(opts.Config.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	ed := valence.New(
		valence.WithDocument(domain.NewDocument(opts.DocumentID)),
		valence.WithStore(store),
		valence.WithLogger(logger),
		valence.WithMetrics(metrics),
		valence.WithMaxHistory(opts.Config.History.MaxSize),
		valence.WithAwarenessDistance(opts.Config.Awareness.Distance),
	)
	if err := ed.Open(ctx, opts.DocumentID); err != nil {
		if !errors.Is(err, domain.ErrDocumentNotFound) {
			return err
		}
		logger.Info("starting new document", "document", opts.DocumentID)
	}

	handler, unsubscribe := api.NewHandler(ed, api.WithLogger(logger), api.WithGatherer(reg))
	defer unsubscribe()

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Ends SSE streams when the command is interrupted.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	if !opts.Quiet {
		w := cmd.ErrOrStderr()
		tui.PrintBanner(w)
		fmt.Fprintf(w, "%s %s (document %s)\n\n", tui.Status(w, true, "listening"), opts.Addr, opts.DocumentID)
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "document", opts.DocumentID, "backend", opts.Config.Store.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			_ = srv.Close()
		}
		if err := ed.Save(shutdownCtx); err != nil {
			return fmt.Errorf("failed to save on shutdown: %w", err)
		}
		logger.Info("server stopped", "document", opts.DocumentID)
		return nil
	}
}
