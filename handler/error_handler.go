package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zhangzhonghe/apitable/binder"
	"github.com/zhangzhonghe/apitable/pkg/logger"
	"github.com/zhangzhonghe/apitable/pkg/requestid"
)

// ErrorMapper translates domain errors into HTTPError values.
// It returns false for errors it does not recognise.
type ErrorMapper func(err error) (HTTPError, bool)

// classify resolves err to an HTTPError: explicit HTTPError first, then the
// mapper, then binder failures, and finally 500.
func classify(err error, mapper ErrorMapper) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if mapper != nil {
		if mapped, ok := mapper(err); ok {
			return mapped
		}
	}
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMedia.WithMessage(err.Error())
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParsePath):
		return ErrBadRequest.WithMessage(err.Error())
	}
	return ErrInternalServerError
}

// NewErrorHandler returns an ErrorHandler that renders JSON error envelopes.
// 4xx errors are logged at warn level and 5xx at error level.
func NewErrorHandler(log *slog.Logger, mapper ErrorMapper) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		httpErr := classify(err, mapper)

		level := slog.LevelError
		if httpErr.Code < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", httpErr.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := Error(httpErr).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
