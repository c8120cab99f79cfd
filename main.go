package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/die-net/xsocket/internal/config"
	"github.com/die-net/xsocket/internal/demo"
	"github.com/die-net/xsocket/internal/xsocket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	def := config.Default()

	var (
		configFile = pflag.String("config", "", "Optional INI file with [server], [multicast] and [log] sections. Flags override it.")

		mode = pflag.String("mode", def.Mode, "Demo to run: tcp | multicast")
		role = pflag.String("role", def.Role, "Which side to run: both | server | client")

		serverAddress = pflag.String("server-address", def.ServerAddress, "TCP server IPv4 address")
		serverPort    = pflag.Uint16("server-port", def.ServerPort, "TCP server port")

		multicastGroup     = pflag.String("multicast-group", def.MulticastGroup, "Multicast group IPv4 address (224.0.0.0/4)")
		multicastPort      = pflag.Uint16("multicast-port", def.MulticastPort, "Multicast port")
		multicastInterface = pflag.String("multicast-interface", def.MulticastInterface, "IPv4 address of the interface used for multicast")
		ttl                = pflag.Int("ttl", def.TTL, "Multicast time-to-live")
		multicastLoopback  = pflag.Bool("multicast-loopback", def.MulticastLoopback, "Deliver our own multicast datagrams to local receivers")

		dialTimeout   = pflag.Duration("dial-timeout", def.DialTimeout, "Timeout for TCP connect (0 leaves the OS default)")
		acceptTimeout = pflag.Duration("accept-timeout", def.AcceptTimeout, "How long each accept attempt waits")
		tcpKeepAlive  = pflag.String("tcp-keepalive", def.KeepAlive, "TCP keepalive: on|off|keepidle:keepintvl:keepcnt")

		logLevel  = pflag.String("log-level", def.LogLevel, "Log level: debug | info | warn | error")
		logFormat = pflag.String("log-format", def.LogFormat, "Log format: text | json")
	)

	pflag.CommandLine.SortFlags = false
	pflag.Parse()

	cfg := def
	if *configFile != "" {
		if err := config.LoadINI(*configFile, &cfg); err != nil {
			return fmt.Errorf("invalid --config: %w", err)
		}
	}
	overlay := func(name string, apply func()) {
		if pflag.CommandLine.Changed(name) {
			apply()
		}
	}
	overlay("mode", func() { cfg.Mode = *mode })
	overlay("role", func() { cfg.Role = *role })
	overlay("server-address", func() { cfg.ServerAddress = *serverAddress })
	overlay("server-port", func() { cfg.ServerPort = *serverPort })
	overlay("multicast-group", func() { cfg.MulticastGroup = *multicastGroup })
	overlay("multicast-port", func() { cfg.MulticastPort = *multicastPort })
	overlay("multicast-interface", func() { cfg.MulticastInterface = *multicastInterface })
	overlay("ttl", func() { cfg.TTL = *ttl })
	overlay("multicast-loopback", func() { cfg.MulticastLoopback = *multicastLoopback })
	overlay("dial-timeout", func() { cfg.DialTimeout = *dialTimeout })
	overlay("accept-timeout", func() { cfg.AcceptTimeout = *acceptTimeout })
	overlay("tcp-keepalive", func() { cfg.KeepAlive = *tcpKeepAlive })
	overlay("log-level", func() { cfg.LogLevel = *logLevel })
	overlay("log-format", func() { cfg.LogFormat = *logFormat })

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	ka, err := config.ParseTCPKeepAlive(cfg.KeepAlive)
	if err != nil {
		return fmt.Errorf("invalid --tcp-keepalive: %w", err)
	}

	log := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if err := xsocket.Startup(); err != nil {
		return fmt.Errorf("socket startup: %w", err)
	}
	defer func() {
		if err := xsocket.Shutdown(); err != nil {
			log.Error("socket shutdown", "err", err)
		}
	}()

	mgr := xsocket.New(xsocket.Config{
		DialTimeout:       cfg.DialTimeout,
		KeepAlive:         ka,
		MulticastLoopback: cfg.MulticastLoopback,
		Logger:            log,
	})
	opts := demo.Options{AcceptTimeout: cfg.AcceptTimeout, Logger: log}

	g, ctx := errgroup.WithContext(context.Background())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := cfg.Role == "both" || cfg.Role == "server"
	client := cfg.Role == "both" || cfg.Role == "client"

	switch cfg.Mode {
	case "tcp":
		if server {
			a := demo.NewAcceptor(mgr, opts)
			ln, err := a.Listen(cfg.ServerAddress, cfg.ServerPort)
			if err != nil {
				return err
			}
			g.Go(func() error { return a.Serve(ctx, ln) })
			log.Info("tcp server started", "addr", ln.LocalAddr())
		}
		if client {
			c := demo.NewConnector(mgr, cfg.ServerAddress, cfg.ServerPort, opts)
			g.Go(func() error {
				// Give the acceptor a moment to start polling.
				if server && !pause(ctx, 20*time.Millisecond) {
					return nil
				}
				return c.Run(ctx)
			})
		}

	case "multicast":
		grp := demo.Group{
			Interface: cfg.MulticastInterface,
			Address:   cfg.MulticastGroup,
			Port:      cfg.MulticastPort,
			TTL:       cfg.TTL,
		}
		if server {
			p := demo.NewPublisher(mgr, grp, opts)
			g.Go(func() error { return p.Run(ctx) })
		}
		if client {
			s := demo.NewSubscriber(mgr, grp, opts)
			g.Go(func() error { return s.Run(ctx) })
		}
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	log.Info("shutting down", slog.String("mode", cfg.Mode))
	return err
}

func pause(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
