package http

import "github.com/labstack/echo/v4"

// Handler registers its routes on an Echo instance.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// RouteFunc adapts a plain function to Handler.
type RouteFunc func(e *echo.Echo)

func (f RouteFunc) RegisterRoutes(e *echo.Echo) { f(e) }
