package main

import (
	"os"

	"chroma-billboard/internal/app"
	"chroma-billboard/internal/logger"
	"chroma-billboard/internal/shutdown"
)

func main() {
	log := logger.NewFromEnv()

	application, err := app.NewApplication(log)
	if err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}

	manager := shutdown.NewManager(log)
	manager.Register(application)
	manager.Listen()

	go func() {
		<-manager.Done()
		application.Quit()
	}()

	if err := application.Run(); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}

	// Window-close exits Run; make sure teardown ran either way.
	manager.Shutdown()
}
