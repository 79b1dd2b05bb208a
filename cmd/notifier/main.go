package main

import (
	"context"
	"os"
	"os/signal"
	"postboard/internal/app/consumers"
	"postboard/internal/app/deps"
	"postboard/internal/app/services"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()

	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	deps.Logger.Info(context.Background(), "Password change notifier has started.")
	<-stopCh
	deps.Logger.Info(context.Background(), "Stopping password change notifier.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
