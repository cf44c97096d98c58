package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ReviewAnalyzer/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Param string `json:"param,omitempty"`
}

// errorHandling renders domain errors as JSON; echo errors pass through.
func (s *Server) errorHandling() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			status, body := s.describe(c, err)
			if err := c.JSON(status, body); err != nil {
				return fmt.Errorf("write error response: %w", err)
			}
			return nil
		}
	}
}

func (s *Server) describe(c echo.Context, err error) (int, errorResponse) {
	attrs := []any{"path", c.Request().URL.Path, "method", c.Request().Method, "error", err}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		s.logger.Info("validation error", append(attrs, "field", vErr.Field)...)
		return http.StatusBadRequest, errorResponse{Error: vErr.Error(), Field: vErr.Field}
	}

	var qErr *domain.QueryParameterError
	if errors.As(err, &qErr) {
		s.logger.Info("query parameter error", append(attrs, "param", qErr.Param)...)
		return http.StatusBadRequest, errorResponse{Error: qErr.Error(), Param: qErr.Param}
	}

	s.logger.Error("internal error", attrs...)
	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
