package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/spf13/viper"
)

// getAdminAuth guards administrative routes with the users listed in
// the config. The surrounding system does real identity checks; this
// is only plumbing for an already-authorized operator.
func getAdminAuth() fiber.Handler {
	users := viper.GetStringMapString("admin_users")

	if len(users) == 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return basicauth.New(basicauth.Config{Users: users})
}
