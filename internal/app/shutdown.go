package app

import (
	"context"
	"net/http"

	"github.com/r3labs/sse/v2"
)

// ShutdownHttpServer stops server gracefully. Event streams are closed first,
// they never end by themselves and would hold Shutdown until ctx expires.
func ShutdownHttpServer(ctx context.Context, server *http.Server, sseServer *sse.Server) error {
	server.RegisterOnShutdown(sseServer.Close)
	return server.Shutdown(ctx)
}
