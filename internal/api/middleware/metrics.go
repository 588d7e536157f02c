package middleware

import (
	"strconv"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"

	"github.com/luma/gallery/internal/api/metrics"
)

var (
	metricsOnce       sync.Once
	metricsMiddleware echo.MiddlewareFunc
)

// Metrics records request count, latency and sizes per registered route as
// luma_http_* series. status resolves the code label of requests whose
// handler returned an error, since the error handler has not written the
// response yet.
//
// The collectors live in the default registry, so every router in the
// process shares one middleware.
func Metrics(status func(error) int) echo.MiddlewareFunc {
	metricsOnce.Do(func() {
		metricsMiddleware = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace: metrics.Namespace,
			Subsystem: "http",
			LabelFuncs: map[string]echoprometheus.LabelValueFunc{
				"code": func(c echo.Context, err error) string {
					if err != nil {
						return strconv.Itoa(status(err))
					}
					return strconv.Itoa(c.Response().Status)
				},
			},
			DoNotUseRequestPathFor404: true,
		})
	})
	return metricsMiddleware
}
