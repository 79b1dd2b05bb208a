package app

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/require"
)

func TestShutdownWithOpenEventStream(t *testing.T) {
	sseServer := sse.New()
	sseServer.AutoStream = true
	sseServer.AutoReplay = false

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := &http.Server{Handler: sseServer}
	go server.Serve(listener)

	response, err := http.Get("http://" + listener.Addr().String() + "/?stream=1")
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	startedAt := time.Now()

	require.NoError(t, ShutdownHttpServer(ctx, server, sseServer))
	require.Less(t, time.Since(startedAt), 5*time.Second)
}
