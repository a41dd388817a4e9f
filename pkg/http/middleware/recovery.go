package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "FinDoc/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a 500 {"error":"Internal server error"}.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					l.Error("panic recovered",
						applogger.String("path", c.Request().URL.Path),
						applogger.Error(fmt.Errorf("%v", r)),
						applogger.String("stack", string(debug.Stack())),
					)
					err = c.JSON(http.StatusInternalServerError, map[string]string{
						"error": "Internal server error",
					})
				}
			}()
			return next(c)
		}
	}
}
