package handler

import (
	"html/template"
	"moviemart-checkout/internal/dto"
	"moviemart-checkout/internal/middleware"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/service"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var ccavenueFormTemplate = template.Must(template.New("ccavenue").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Redirecting to payment</title>
</head>
<body onload="document.forms['ccavenue'].submit()">
	<p>Redirecting to the payment page…</p>
	<form name="ccavenue" method="post" action="{{.Action}}">
		<input type="hidden" name="encRequest" value="{{.EncRequest}}">
		<input type="hidden" name="access_code" value="{{.AccessCode}}">
		<noscript><button type="submit">Continue to payment</button></noscript>
	</form>
</body>
</html>
`))

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	sessionService  service.SessionService
	log             *logrus.Logger
}

func NewCheckoutHandler(checkoutService service.CheckoutService, sessionService service.SessionService, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		sessionService:  sessionService,
		log:             log,
	}
}

func (h *CheckoutHandler) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	item, err := h.checkoutService.GetItem(ctx, model.ItemKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *CheckoutHandler) Quote(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	draft, err := h.checkoutService.Quote(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, draft)
}

func (h *CheckoutHandler) StartFlow(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.StartFlowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Contact == nil {
		req.Contact = &model.Contact{}
	}
	h.prefillContact(c, req.Contact)

	purchase, err := h.checkoutService.StartFlow(ctx, middleware.SessionID(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewFlowView(purchase))
}

func (h *CheckoutHandler) GetFlow(c echo.Context) error {
	ctx := c.Request().Context()

	purchase, err := h.checkoutService.GetFlow(ctx, middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewFlowView(purchase))
}

func (h *CheckoutHandler) UpdateDraft(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	purchase, err := h.checkoutService.UpdateDraft(ctx, middleware.SessionID(c), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewFlowView(purchase))
}

func (h *CheckoutHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := middleware.SessionID(c)

	var req dto.PayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	h.prefillContact(c, &req.Contact)
	if req.CountryCode == "" {
		code, err := h.sessionService.GuessCountryCode(ctx, sessionID, countryHint(c))
		if err != nil {
			h.log.WithError(err).Warn("guess country code")
		}
		req.CountryCode = code
	}

	result, err := h.checkoutService.Pay(ctx, sessionID, c.Param("id"), &req)
	if err != nil {
		return err
	}

	// remember who paid so the next checkout is prefilled
	profile := &model.Profile{Name: req.Contact.Name, Email: req.Contact.Email, Phone: req.Contact.Phone}
	if claims := middleware.ProfileFromContext(c); claims != nil {
		profile.UserID = claims.UserID
	}
	if err := h.sessionService.SetProfile(ctx, sessionID, profile); err != nil {
		h.log.WithError(err).Warn("cache user profile")
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) GatewayResult(c echo.Context) error {
	ctx := c.Request().Context()

	var cb dto.GatewayCallback
	if err := c.Bind(&cb); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	result, err := h.checkoutService.HandleGatewayResult(ctx, middleware.SessionID(c), c.Param("id"), &cb)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.checkoutService.Recheck(ctx, middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) Reset(c echo.Context) error {
	ctx := c.Request().Context()

	purchase, err := h.checkoutService.Reset(ctx, middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewFlowView(purchase))
}

func (h *CheckoutHandler) Result(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.checkoutService.Result(ctx, middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) CCAvenueRedirect(c echo.Context) error {
	ctx := c.Request().Context()

	form, err := h.checkoutService.CCAvenueForm(ctx, middleware.SessionID(c), c.Param("id"))
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := ccavenueFormTemplate.Execute(&sb, form); err != nil {
		return err
	}

	return c.HTML(http.StatusOK, sb.String())
}

// HandleSuccess is where the user lands after a redirecting gateway.
func (h *CheckoutHandler) HandleSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.QueryParam("order_id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order id")
	}

	result, err := h.checkoutService.Resume(ctx, middleware.SessionID(c), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Resume verifies an order found in the URL or the session on page load.
func (h *CheckoutHandler) Resume(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.checkoutService.Resume(ctx, middleware.SessionID(c), c.QueryParam("order_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// prefillContact fills blank contact fields from the access token, then
// from the cached profile.
func (h *CheckoutHandler) prefillContact(c echo.Context, contact *model.Contact) {
	sources := []*model.Profile{middleware.ProfileFromContext(c)}
	profile, err := h.sessionService.Profile(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		h.log.WithError(err).Warn("read cached profile")
	}
	sources = append(sources, profile)

	for _, p := range sources {
		if p == nil {
			continue
		}
		if contact.Name == "" {
			contact.Name = p.Name
		}
		if contact.Email == "" {
			contact.Email = p.Email
		}
		if contact.Phone == "" {
			contact.Phone = p.Phone
		}
	}
}

func countryHint(c echo.Context) string {
	for _, header := range []string{"CF-IPCountry", "X-Country-Code"} {
		if v := c.Request().Header.Get(header); v != "" {
			return v
		}
	}
	return ""
}
