package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/apperr"
	"github.com/labstack/echo/v4"
)

// handleError is the single place where failures become responses.
func (s *HTTPServer) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if apperr.CodeOf(err) == "" && errors.As(err, &he) {
		err = transportError(he)
	}

	res := apperr.Resolve(err)
	if res.Internal() {
		s.logger.Error(c.Request().Context(), "request failed",
			"error_id", res.Body.Error.ErrorID,
			"code", res.Body.Error.Code,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	for k, v := range res.Header {
		c.Response().Header()[k] = v
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(res.Status)
	} else {
		err = c.JSON(res.Status, res.Body)
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", err)
	}
}

// transportError converts router and middleware rejections into HTTP_ERROR.
// 5xx echo errors stay unclassified so they get a correlation id.
func transportError(he *echo.HTTPError) error {
	switch {
	case he.Code >= http.StatusInternalServerError:
		return he
	case he.Code == http.StatusNotFound:
		return apperr.HTTP(he.Code, "Not found")
	case he.Code == http.StatusMethodNotAllowed:
		return apperr.HTTP(he.Code, "Method not allowed")
	}

	msg, ok := he.Message.(string)
	if !ok {
		msg = fmt.Sprint(he.Message)
	}
	return apperr.HTTP(he.Code, msg)
}
