package http

import (
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/rs/zerolog"
)

const headerCorrelationID = "Correlation-ID"

// correlationID honors an inbound Correlation-ID header and generates one
// otherwise, echoing it back so the SPA can stitch logs together.
func correlationID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(headerCorrelationID)
		if id == "" {
			id = "gen_" + shortuuid.New()
		}
		c.Set(headerCorrelationID, id)
		c.Response().Header().Set(headerCorrelationID, id)
		return next(c)
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			correlation, _ := c.Get(headerCorrelationID).(string)
			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Str("correlation_id", correlation).
				Msg("handling request")

			err := next(c)
			if err != nil {
				log.Err(err).
					Str("path", c.Request().URL.Path).
					Str("correlation_id", correlation).
					Msg("request handling error")
			}
			return err
		}
	}
}
