package handler

import (
	"moviemart-checkout/internal/middleware"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

func (h *SessionHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	profile, err := h.sessionService.Profile(ctx, middleware.SessionID(c))
	if err != nil {
		return err
	}
	if profile == nil {
		profile = middleware.ProfileFromContext(c)
	}
	if profile == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *SessionHandler) PutProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var profile model.Profile
	if err := c.Bind(&profile); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.sessionService.SetProfile(ctx, middleware.SessionID(c), &profile); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *SessionHandler) DeleteProfile(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.sessionService.ClearProfile(ctx, middleware.SessionID(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) GetBookmarks(c echo.Context) error {
	ctx := c.Request().Context()

	bookmarks, err := h.sessionService.Bookmarks(ctx, middleware.SessionID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookmarks)
}

func (h *SessionHandler) AddBookmark(c echo.Context) error {
	ctx := c.Request().Context()

	bookmarks, err := h.sessionService.AddBookmark(ctx, middleware.SessionID(c), bookmarkParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookmarks)
}

func (h *SessionHandler) RemoveBookmark(c echo.Context) error {
	ctx := c.Request().Context()

	bookmarks, err := h.sessionService.RemoveBookmark(ctx, middleware.SessionID(c), bookmarkParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, bookmarks)
}

func (h *SessionHandler) ClearBookmarks(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.sessionService.ClearBookmarks(ctx, middleware.SessionID(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) GetCountry(c echo.Context) error {
	ctx := c.Request().Context()

	code, err := h.sessionService.GuessCountryCode(ctx, middleware.SessionID(c), countryHint(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"country_code": code})
}

func (h *SessionHandler) PutCountry(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CountryCode string `json:"country_code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	sessionID := middleware.SessionID(c)
	if err := h.sessionService.SetCountryCode(ctx, sessionID, req.CountryCode); err != nil {
		return err
	}

	code, err := h.sessionService.CountryCode(ctx, sessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"country_code": code})
}

// ClearSession drops every resumable entry, e.g. on logout.
func (h *SessionHandler) ClearSession(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.sessionService.Clear(ctx, middleware.SessionID(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func bookmarkParam(c echo.Context) model.Bookmark {
	return model.Bookmark{
		Kind: model.ItemKind(c.Param("kind")),
		ID:   c.Param("id"),
	}
}
