package chatbot

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Handle serves POST /api/chatbot/. Validation failures return a specific
// 400; configuration and upstream failures are logged server-side and
// surfaced as a generic 500 that never includes upstream detail.
func (s *Service) Handle(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	msg, err := ValidateMessage(req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message cannot be empty"})
		case errors.Is(err, ErrMessageTooLong):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Message must be 500 characters or less"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid message"})
	}

	reply, err := s.Reply(c.Request().Context(), msg)
	if err != nil {
		c.Logger().Errorf("chatbot: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
