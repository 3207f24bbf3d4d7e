// Package fiber mounts the identity store and the trip catalog on a Fiber
// application. It is the seam where a real HTTP backend would later appear
// behind the same operation contract.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/catalog"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

const defaultBasePath = "/api/auth"

type Adapter struct {
	app      *fiber.App
	basePath string
}

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app, basePath: defaultBasePath}
}

// RegisterRoutes mounts the five identity operations under the base path.
func (a *Adapter) RegisterRoutes(identity core.IdentityProvider) error {
	api := a.app.Group(a.basePath)

	api.Post("/register", handleRegister(identity))
	api.Post("/login", handleLogin(identity))
	api.Post("/logout", handleLogout(identity))
	api.Get("/me", handleCurrentUser(identity))
	api.Patch("/profile", handleUpdateProfile(identity))

	return nil
}

// RegisterCatalog mounts the read-only trip endpoints.
func (a *Adapter) RegisterCatalog(c *catalog.Catalog) error {
	trips := a.app.Group("/api/trips")

	trips.Get("/", handleSearchTrips(c))
	trips.Get("/:id", handleTripDetails(c))
	trips.Get("/:id/seats", handleSeatMap(c))

	return nil
}
