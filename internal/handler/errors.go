package handler

import (
	"context"
	"errors"
	"moviemart-checkout/internal/client"
	"moviemart-checkout/internal/dto"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders every error as dto.ErrorResponse, using the
// backend's message when there is one.
func ErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.WithError(err).Error("write error response")
		}
	}
}

func errorResponse(err error) (int, *dto.ErrorResponse) {
	var httpErr *echo.HTTPError
	var validationErr *service.ValidationError
	var backendErr *client.BackendError

	switch {
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, &dto.ErrorResponse{Error: msg}
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, &dto.ErrorResponse{
			Error:  service.UserMessage(err),
			Fields: validationErr.Fields,
		}
	case errors.Is(err, service.ErrFlowNotFound),
		errors.Is(err, service.ErrNothingToResume):
		return http.StatusNotFound, &dto.ErrorResponse{Error: err.Error()}
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotCompleted):
		return http.StatusConflict, &dto.ErrorResponse{Error: err.Error()}
	case errors.Is(err, service.ErrInvalidItemKind),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrUnknownSeatType),
		errors.Is(err, service.ErrFreeItem):
		return http.StatusBadRequest, &dto.ErrorResponse{Error: err.Error()}
	case errors.As(err, &backendErr):
		status := http.StatusBadGateway
		if backendErr.StatusCode >= 400 && backendErr.StatusCode < 500 {
			status = backendErr.StatusCode
		}
		return status, &dto.ErrorResponse{Error: backendErr.UserMessage()}
	case errors.Is(err, model.ErrNoGatewayOrder):
		return http.StatusBadGateway, &dto.ErrorResponse{Error: service.UserMessage(err)}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, &dto.ErrorResponse{Error: "request cancelled"}
	default:
		return http.StatusInternalServerError, &dto.ErrorResponse{Error: service.UserMessage(err)}
	}
}
