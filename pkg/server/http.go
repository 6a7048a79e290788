// Copyright 2026 The hostctl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package server

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/api"
	"github.com/openbmc/hostctl/pkg/service"
)

// newHTTPRouter creates the router of all HTTP endpoints.
func (s *Server) newHTTPRouter() *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.HTTPErrorHandler = s.httpErrorHandler

	r.GET("/health", echo.WrapHandler(http.HandlerFunc(healthHandler)))
	r.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	r.GET("/debug/pprof/*", echo.WrapHandler(http.HandlerFunc(pprof.Index)))

	v1 := r.Group("/v1")
	v1.POST("/init", s.handleInit)
	v1.POST("/boot", s.handleBoot)
	v1.PUT("/debug-mode", s.handleSetDebugMode)
	v1.PUT("/flash-side", s.handleSetFlashSide)
	v1.GET("/status", s.handleGetStatus)
	v1.GET("/logs", s.handleGetLogs)
	return r
}

// httpErrorHandler converts service errors to HTTP errors.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if _, ok := err.(*echo.HTTPError); !ok {
		switch {
		case errors.Cause(err) == service.ErrShuttingDown:
			err = echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		case model.IsValidation(err):
			err = echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			s.log.Warn().Err(err).Str("path", c.Path()).Msg("HTTP request failed")
		}
	}
	c.Echo().DefaultHTTPErrorHandler(err, c)
}

func (s *Server) handleInit(c echo.Context) error {
	if err := s.service.Init(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, api.Empty{})
}

func (s *Server) handleBoot(c echo.Context) error {
	if err := s.service.Boot(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, api.Empty{})
}

func (s *Server) handleSetDebugMode(c echo.Context) error {
	var req api.SetDebugModeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := s.service.SetDebugMode(ctx, req.Enabled); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.service.GetConfiguration(ctx))
}

func (s *Server) handleSetFlashSide(c echo.Context) error {
	var req api.SetFlashSideRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.FlashSide == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "flash_side missing")
	}
	ctx := c.Request().Context()
	if err := s.service.SetFlashSide(ctx, req.FlashSide); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.service.GetConfiguration(ctx))
}

func (s *Server) handleGetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.service.Status(c.Request().Context()))
}

func (s *Server) handleGetLogs(c echo.Context) error {
	var lines []string
	if s.logs != nil {
		lines = s.logs.Lines()
	}
	if len(lines) == 0 {
		return c.String(http.StatusOK, "")
	}
	return c.String(http.StatusOK, strings.Join(lines, "\n")+"\n")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK\n"))
}
