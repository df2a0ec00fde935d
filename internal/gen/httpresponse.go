//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONresponse - send the JSON; jsr should be a json-ready struct
func JSONresponse(c echo.Context, jsr any) error {
	// JSONPretty shows up on the profiler: only worth it when inspecting output by hand
	return c.JSON(http.StatusOK, jsr)
}

// JSONfailure - an echo error carrying a status and a formatted message
func JSONfailure(status int, msg string) error {
	return echo.NewHTTPError(status, msg)
}
