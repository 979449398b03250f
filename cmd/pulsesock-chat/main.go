// Command pulsesock-chat is an interactive WebSocket chat client for
// exercising the transport: heartbeats, latency reporting and idle
// timeouts run against a real server.
//
// Usage:
//
//	# Connect to a server
//	pulsesock-chat -url ws://localhost:8080/ws
//
//	# Run a local echo server
//	pulsesock-chat -listen :8080
//
// In client mode every line typed is sent as a text message and every
// received message is printed. With -verbose, frame-level transport
// events are logged to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/gorilla/websocket"

	"github.com/pulsesock/pulsesock-go/pkg/backend/gorillaws"
	"github.com/pulsesock/pulsesock-go/pkg/codec"
	"github.com/pulsesock/pulsesock-go/pkg/log"
	"github.com/pulsesock/pulsesock-go/pkg/socket"
	"github.com/pulsesock/pulsesock-go/pkg/transport"
)

func main() {
	var (
		url        = flag.String("url", "", "WebSocket URL to connect to (client mode)")
		listen     = flag.String("listen", "", "address to serve an echo server on (server mode)")
		configPath = flag.String("config", "", "path to a YAML transport config file")
		heartbeat  = flag.Duration("heartbeat", 0, "heartbeat interval (overrides config)")
		idle       = flag.Duration("idle-timeout", 0, "idle timeout (overrides config)")
		verbose    = flag.Bool("verbose", false, "log transport events to stderr")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *heartbeat, *idle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var logger log.Logger = log.NoopLogger{}
	if *verbose {
		logger = log.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	switch {
	case *listen != "":
		err = runServer(*listen, cfg, logger)
	case *url != "":
		err = runClient(*url, cfg, logger)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string, heartbeat, idle time.Duration) (socket.Config, error) {
	cfg := socket.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = socket.LoadConfig(path); err != nil {
			return socket.Config{}, err
		}
	}
	if heartbeat > 0 {
		cfg.HeartbeatInterval = heartbeat
	}
	if idle > 0 {
		cfg.IdleTimeout = idle
	}
	return cfg, cfg.Validate()
}

func buildSocket(conn *websocket.Conn, cfg socket.Config, logger log.Logger, observer transport.Observer) (*socket.Socket[string], error) {
	return socket.NewBuilder[string]().
		Adapter(gorillaws.New(conn)).
		Codec(codec.Plaintext{}).
		Logger(logger).
		Observer(observer).
		Config(cfg).
		Build()
}

// runServer serves a WebSocket echo endpoint at /ws.
func runServer(addr string, cfg socket.Config, logger log.Logger) error {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		sock, err := buildSocket(conn, cfg, logger, transport.NoopObserver{})
		if err != nil {
			conn.Close()
			return
		}
		defer sock.Close()

		fmt.Printf("[%s] connected: %s\n", sock.ConnectionID(), r.RemoteAddr)
		for {
			msg, err := sock.Receive(r.Context())
			if err != nil {
				fmt.Printf("[%s] disconnected: %v\n", sock.ConnectionID(), err)
				return
			}
			if err := sock.Send(r.Context(), msg); err != nil {
				return
			}
		}
	})

	fmt.Printf("echo server listening on %s\n", addr)
	return http.ListenAndServe(addr, nil)
}

// latencyObserver prints heartbeat round-trip times without breaking
// the readline prompt.
type latencyObserver struct {
	transport.NoopObserver
	out io.Writer
}

func (o *latencyObserver) OnLatency(rtt time.Duration) {
	fmt.Fprintf(o.out, "* heartbeat rtt %v\n", rtt)
}

// runClient connects to url and runs the interactive loop.
func runClient(url string, cfg socket.Config, logger log.Logger) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "chat> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sock, err := buildSocket(conn, cfg, logger, &latencyObserver{out: rl.Stdout()})
	if err != nil {
		conn.Close()
		return err
	}
	defer sock.Close()

	fmt.Fprintf(rl.Stdout(), "connected to %s (conn %s)\n", url, sock.ConnectionID())

	// Print incoming messages alongside the prompt.
	go func() {
		for {
			msg, err := sock.Receive(context.Background())
			if err != nil {
				if errors.Is(err, io.EOF) {
					fmt.Fprintln(rl.Stdout(), "connection closed by peer")
				} else {
					fmt.Fprintf(rl.Stderr(), "receive error: %v\n", err)
				}
				rl.Close()
				return
			}
			fmt.Fprintf(rl.Stdout(), "< %s\n", msg)
		}
	}()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			// EOF or closed by the receive goroutine.
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "/quit" {
			return nil
		}

		if err := sock.Send(context.Background(), input); err != nil {
			fmt.Fprintf(rl.Stderr(), "send error: %v\n", err)
			return nil
		}
	}
}
