// Package servecmder provides the serve command for running the conduit server.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conduithq/conduit/api"
	"github.com/conduithq/conduit/pkg/config"
	"github.com/conduithq/conduit/pkg/dotdir"
	"github.com/conduithq/conduit/pkg/logger"
	"github.com/conduithq/conduit/pkg/memory"
)

type ServeCommander struct {
	listen    string
	storePath string
	chatModel string
	embModel  string
	embDims   uint
	logFile   string
	debug     bool
	logger    *slog.Logger
}

const serveLongDesc string = `Run the conduit server.

Serves the memory REST API, an OpenAI-compatible surface for clients
that speak that protocol, and an MCP endpoint at /mcp for agents.

The memory store is a plain directory of markdown files; point --store
at an existing directory to serve memories created elsewhere.

Examples:
  conduit serve
  conduit serve --listen :8090
  conduit serve --store ./my-memories`

const serveShortDesc string = "Run the conduit server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagListen,
				config.FlagStore,
				config.FlagChatModel,
				config.FlagEmbedModel,
				config.FlagEmbedDims,
			})

			cmder.listen = v.GetString("api.listen")
			cmder.storePath = v.GetString("storage.path")
			cmder.chatModel = v.GetString("chat.model")
			cmder.embModel = v.GetString("embedding.model")
			cmder.embDims = v.GetUint("embedding.dimensions")

			if cmder.storePath == "" {
				ddm := dotdir.NewManager()
				cmder.storePath, err = ddm.MemoriesDir(configDir)
				if err != nil {
					return fmt.Errorf("resolving memories directory: %w", err)
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagStore, &cmder.storePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagChatModel, &cmder.chatModel)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbedModel, &cmder.embModel)
	config.AddUintFlag(cmd, config.Flags, config.FlagEmbedDims, &cmder.embDims)
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.New(logger.WithDebug(c.debug))

	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()

		c.logger = logger.Multi(
			c.logger,
			logger.New(logger.WithDebug(c.debug), logger.WithJSON(true), logger.WithWriter(f)),
		)
	}

	store, err := memory.NewStore(c.storePath, c.logger)
	if err != nil {
		return fmt.Errorf("opening memory store: %w", err)
	}

	c.logger.Info("using memory store", "path", c.storePath)

	server, err := api.NewServer(api.Config{
		ListenAddr:     c.listen,
		ChatModel:      c.chatModel,
		EmbeddingModel: c.embModel,
		EmbeddingDims:  c.embDims,
	}, store, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Log store changes made by other processes while serving.
	events, err := store.Watch(ctx)
	if err != nil {
		c.logger.Warn("could not watch memory directory", "error", err)
	} else {
		go c.logEvents(events)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

func (c *ServeCommander) logEvents(events <-chan memory.Event) {
	for event := range events {
		c.logger.Debug("memory store changed",
			"id", event.ID,
			"op", event.Op.String(),
		)
	}
}
