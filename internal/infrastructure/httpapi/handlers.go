package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ReviewAnalyzer/internal/domain"
)

// reviewResponse is the wire form of a review.
type reviewResponse struct {
	ID        string            `json:"ReviewId"`
	Location  string            `json:"Location"`
	Body      string            `json:"ReviewBody"`
	Timestamp string            `json:"Timestamp"`
	Sentiment *domain.Sentiment `json:"sentiment,omitempty"`
}

func toResponse(r domain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		Location:  r.Location,
		Body:      r.Body,
		Timestamp: r.Timestamp.Format(domain.TimestampLayout),
		Sentiment: r.Sentiment,
	}
}

func (s *Server) handleQuery(c echo.Context) error {
	reviews, err := s.service.Query(c.Request().Context(), c.QueryParams())
	if err != nil {
		return err
	}

	body := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		body = append(body, toResponse(r))
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		return fmt.Errorf("send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSubmit(c echo.Context) error {
	req := c.Request()
	if err := req.ParseForm(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form body")
	}

	review, err := s.service.Submit(req.Context(), req.PostForm)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toResponse(review)); err != nil {
		return fmt.Errorf("send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLocations(c echo.Context) error {
	if err := c.JSON(http.StatusOK, map[string][]string{"locations": s.service.Locations()}); err != nil {
		return fmt.Errorf("send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLiveness(c echo.Context) error {
	body := map[string]any{
		"status":  "ok",
		"reviews": s.service.Count(),
		"uptime":  s.clock.Since(s.startTime).Round(time.Second).String(),
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		return fmt.Errorf("send JSON response: %w", err)
	}
	return nil
}
