package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/boothcache/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

const serverTitle = "Booth Catalog Cache"

// instructions is returned to clients on initialize.
const instructions = `boothcache is a local cache of Booth catalog items. ` +
	`Cache items with cache_items before curating them: favorites, collections and tags ` +
	`only accept item IDs that are already cached. ` +
	`Call check_avatars_need_update before refreshing the popular list with update_popular_avatars. ` +
	`Statistics are read-only; get_all_statistics returns every aggregate from one consistent read.`

// Server is the MCP server for boothcache.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "boothcache",
		Title:   serverTitle,
		Version: Version,
	}

	opts := &mcp.ServerOptions{
		Instructions:       instructions,
		InitializedHandler: logClient,
		HasTools:           true,
		HasResources:       true,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, opts),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("mcp: serving on http://%s", addr)

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// logClient records which client completed the handshake.
func logClient(_ context.Context, req *mcp.InitializedRequest) {
	params := req.Session.InitializeParams()
	if params == nil || params.ClientInfo == nil {
		logger.Debug("mcp: client initialized")
		return
	}
	logger.Debug("mcp: client %s %s initialized", params.ClientInfo.Name, params.ClientInfo.Version)
}
