package handler

import (
	"net/http"
	"staffdir/config"
	"staffdir/di"
	"staffdir/shared/logger"
	"sync"
)

var (
	app  *di.Application
	once sync.Once
)

// Handler serves the API as a single serverless function. The application is
// wired on the first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()

		if cfg.App.Seed.Enable {
			if err := app.Seeder.Seed(r.Context()); err != nil {
				logger.ErrorWithStack(err)
			}
		}
	})

	app.HTTP.ServeHTTP(w, r)
}
