package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". Nil errors yield an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// SuiteID records the WeCom suite identifier under "suite_id".
func SuiteID(id string) slog.Attr {
	return slog.String("suite_id", id)
}

// CorpID records the paid corp identifier under "paid_corp_id".
func CorpID(id string) slog.Attr {
	return slog.String("paid_corp_id", id)
}

// API records the external API name under "api".
func API(name string) slog.Attr {
	return slog.String("api", name)
}

// Duration records d in milliseconds under "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}
