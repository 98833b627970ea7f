package di

import (
	"staffdir/seed"
	"staffdir/transport/http"
)

// Application is the fully wired service.
type Application struct {
	HTTP   *http.HTTP
	Seeder *seed.Seeder
}
