package handler

import "github.com/labstack/echo/v4"

// currentUserName returns the display name injected by the SessionAuth
// middleware, for the "logged in as" header. Empty when the middleware did
// not run (login page, probes).
func currentUserName(c echo.Context) string {
	name, _ := c.Get("name").(string)
	return name
}
