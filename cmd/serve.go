package cmd

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cocoindex-io/examples/internal/builds"
	"github.com/cocoindex-io/examples/internal/progress"
	"github.com/cocoindex-io/examples/internal/server"
	"github.com/cocoindex-io/examples/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it locally",
	Long: `Builds the site, then serves it with the version switch and catalog
APIs. With --watch the content directory is rebuilt on change and open
pages reload themselves.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", false, "rebuild on content changes and live reload pages")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}
	watching, _ := cmd.Flags().GetBool("watch")
	open, _ := cmd.Flags().GetBool("open")

	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, entries, err := b.build(ctx, progress.NewReporter())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	cat, err := server.NewCatalog(cfg.Catalog.Tags)
	if err != nil {
		return err
	}
	cat.Set(entries)

	srv := server.New(server.Config{
		Port:       port,
		OutputDir:  cfg.OutputDir,
		AllowAll:   cfg.Server.AllowAllOrigins,
		LiveReload: watching,
	}, b.rw, b.renderer, cat, b.metrics, b.logger)
	builds.RegisterRoutes(srv.Router(), b.history)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", port, err)
	}

	if watching {
		w, err := watch.New(cfg.ContentDir, watch.DefaultDebounce, b.logger, cfg.OutputDir, cfg.DataDir)
		if err != nil {
			ln.Close()
			return err
		}
		go func() {
			err := w.Run(ctx, func() {
				_, entries, err := b.build(ctx, progress.Nop{})
				if err != nil {
					b.logger.Error("rebuild failed", zap.Error(err))
					return
				}
				srv.Catalog().Set(entries)
				n := srv.Hub().Broadcast(server.ReloadMessage)
				b.logger.Info("reloaded pages", zap.Int("clients", n))
			})
			if err != nil && ctx.Err() == nil {
				b.logger.Error("watcher stopped", zap.Error(err))
			}
		}()
	}

	url := fmt.Sprintf("http://localhost:%d/", ln.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "exsite %s serving %s at %s\n", Version, cfg.OutputDir, url)
	if watching {
		fmt.Fprintf(os.Stderr, "  Watching %s for changes\n", cfg.ContentDir)
	}
	if open {
		openBrowser(url)
	}

	if err := srv.Run(ctx, ln); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "\nServer stopped")
	return nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

