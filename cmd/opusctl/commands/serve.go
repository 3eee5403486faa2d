package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/opusbridge"
)

const (
	defaultListen     = ":7070"
	defaultBridgePath = "/opus"
)

var (
	serveListen string
	servePath   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the WebSocket control bridge",
	Long: `Run the control bridge. Clients connect over WebSocket, create encoders
and decoders by integer id, and forward control requests to them.

Binary messages carry msgpack, text messages carry JSON. Each connection
has its own ids, starting at 1, and its instances are destroyed when it
closes.

The listen address comes from --listen, then OPUSCTL_LISTEN, then the
config file, then :7070.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := listenAddr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	bridge := opusbridge.NewServer(&opusbridge.ServerConfig{Logger: logger})
	mux := http.NewServeMux()
	mux.Handle(servePath, bridge)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info("bridge listening", "addr", ln.Addr().String(), "path", servePath)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	bridge.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func listenAddr() string {
	if serveListen != "" {
		return serveListen
	}
	if cfg, err := GetConfig(); err == nil && cfg.Listen != "" {
		return cfg.Listen
	}
	return defaultListen
}

// bridgeURL returns the WebSocket URL of the bridge at the configured
// listen address.
func bridgeURL() string {
	addr := listenAddr()
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "ws://" + addr + defaultBridgePath
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default :7070)")
	serveCmd.Flags().StringVar(&servePath, "path", defaultBridgePath, "WebSocket endpoint path")
	rootCmd.AddCommand(serveCmd)
}
