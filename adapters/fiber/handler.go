package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/Syed-Zahaab-Hussain/e-ticketing/catalog"
	"github.com/Syed-Zahaab-Hussain/e-ticketing/core"
)

// handleRegister binds the registration payload and relays the Result.
func handleRegister(identity core.IdentityProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input core.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]string{
				"error": "invalid request body",
			})
		}

		result := identity.Register(c.Context(), input)
		status := statusForResult(result)
		if result.Success {
			status = http.StatusCreated
		}
		return c.Status(status).JSON(result)
	}
}

func handleLogin(identity core.IdentityProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		var creds core.Credentials
		if err := c.Bind().Body(&creds); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]string{
				"error": "invalid request body",
			})
		}

		result := identity.Login(c.Context(), creds)
		return c.Status(statusForResult(result)).JSON(result)
	}
}

func handleLogout(identity core.IdentityProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		result := identity.Logout(c.Context())
		return c.Status(statusForResult(result)).JSON(result)
	}
}

func handleCurrentUser(identity core.IdentityProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		result := identity.CurrentUser(c.Context())
		return c.Status(statusForResult(result)).JSON(result)
	}
}

func handleUpdateProfile(identity core.IdentityProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		var update core.ProfileUpdate
		if err := c.Bind().Body(&update); err != nil {
			return c.Status(http.StatusBadRequest).JSON(map[string]string{
				"error": "invalid request body",
			})
		}

		result := identity.UpdateProfile(c.Context(), update)
		return c.Status(statusForResult(result)).JSON(result)
	}
}

func handleSearchTrips(cat *catalog.Catalog) fiber.Handler {
	return func(c fiber.Ctx) error {
		trips := cat.Search(catalog.Query{
			SortBy:   c.Query("sortBy"),
			FilterBy: c.Query("filterBy"),
		})
		return c.JSON(trips)
	}
}

func handleTripDetails(cat *catalog.Catalog) fiber.Handler {
	return func(c fiber.Ctx) error {
		details, err := cat.Details(c.Params("id"))
		if err != nil {
			return tripError(c, err)
		}
		return c.JSON(details)
	}
}

func handleSeatMap(cat *catalog.Catalog) fiber.Handler {
	return func(c fiber.Ctx) error {
		seats, err := cat.SeatMap(c.Params("id"))
		if err != nil {
			return tripError(c, err)
		}
		return c.JSON(seats)
	}
}

func tripError(c fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrTripNotFound) {
		status = http.StatusNotFound
	}
	return c.Status(status).JSON(map[string]string{"error": err.Error()})
}

// statusForResult maps a Result's error code to an HTTP status. The body
// always carries the Result itself; the status is a convenience for HTTP
// clients that branch before parsing.
func statusForResult(result *core.Result) int {
	if result.Success {
		return http.StatusOK
	}

	switch result.Error {
	case core.CodeEmailExists:
		return http.StatusConflict
	case core.CodeInvalidCredentials,
		core.CodeNotAuthenticated,
		core.CodeInvalidSession:
		return http.StatusUnauthorized
	case core.CodeUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
