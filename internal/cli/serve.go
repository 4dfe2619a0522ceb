package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/egoview/egoview/internal/server"
	"github.com/egoview/egoview/pkg/cache"
	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/pipeline"
	"github.com/egoview/egoview/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	dataDir  string // graph files for the dir source
	source   string // graph source: dir or mongo
	mongoURI string // connection string for the mongo source
	mongoDB  string // database name for the mongo source
	noCache  bool   // bypass the layout/artifact cache
}

// serveCommand creates the serve command running the HTTP API and HTML viewer.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and HTML viewer",
		Long: `Serve exposes the view pipeline over HTTP. Graphs come either from the
data directory (each *.json file becomes a named graph) or from a MongoDB
collection populated via the graph store. Endpoints:

  GET /api/view                       annotated view as JSON
  GET /api/graphs                     list available graphs
  GET /api/graphs/{name}/attributes   non-reserved attribute keys
  GET /api/graphs/{name}/neighbors    successor/predecessor lists for a focus
  GET /view.html                      standalone interactive HTML view`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", c.Config.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", c.Config.DataDir, "directory of graph JSON files")
	cmd.Flags().StringVar(&opts.source, "source", c.Config.Store.Source, "graph source: dir or mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", c.Config.Store.MongoURI, "MongoDB connection string")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", c.Config.Store.MongoDB, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the layout and artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	src, scope, err := c.graphSource(ctx, opts)
	if err != nil {
		return err
	}
	if closer, ok := src.(interface{ Close(context.Context) error }); ok {
		defer closer.Close(context.Background())
	}

	if names, err := src.List(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "graph source %s", opts.source)
	} else if len(names) == 0 {
		logger.Warn("graph source is empty", "source", opts.source)
		printNextStep("Generate a demo graph", "egoview gen "+opts.dataDir+"/demo.json")
	}

	byteCache, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	// Scope cache keys by graph source so deployments sharing a Redis
	// instance cannot collide.
	keyer := cache.NewScopedKeyer(nil, scope)
	runner := pipeline.NewRunner(byteCache, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(runner, src, logger)
	printInfo("Serving %s graphs on %s", opts.source, opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}

// graphSource builds the configured graph source and its cache key scope.
func (c *CLI) graphSource(ctx context.Context, opts *serveOpts) (server.GraphSource, string, error) {
	switch opts.source {
	case sourceMongo:
		st, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			return nil, "", err
		}
		return &mongoSource{StoreSource: server.StoreSource{Store: st}}, "mongo/" + opts.mongoDB + "/", nil
	case sourceDir:
		return &server.DirSource{Dir: opts.dataDir}, "dir/" + opts.dataDir + "/", nil
	default:
		return nil, "", errors.New(errors.ErrCodeInvalidParameter,
			"unknown graph source %q (must be dir or mongo)", opts.source)
	}
}

// mongoSource adds connection cleanup to the store-backed source.
type mongoSource struct {
	server.StoreSource
}

func (s *mongoSource) Close(ctx context.Context) error {
	return s.Store.Close(ctx)
}
