package slogcute

import (
	"context"
	"encoding/json"
	"io"
	stdLog "log"
	"log/slog"
	"slices"

	"github.com/fatih/color"
)

type CuteHandlerOptions struct {
	SlogOptions *slog.HandlerOptions
}

// CuteHandler prints colored, human friendly records for local runs and
// terminals. Attributes are rendered as indented JSON.
type CuteHandler struct {
	logger *stdLog.Logger
	level  slog.Leveler
	attrs  []slog.Attr
}

// NewCuteHandler creates a new CuteHandler with the given options.
func (opts CuteHandlerOptions) NewCuteHandler(out io.Writer) *CuteHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts.SlogOptions != nil && opts.SlogOptions.Level != nil {
		level = opts.SlogOptions.Level
	}

	return &CuteHandler{
		logger: stdLog.New(out, "", 0),
		level:  level,
	}
}

func (handler *CuteHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats and outputs the log record in a cute way.
func (handler *CuteHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String() + ":"

	switch r.Level {
	case slog.LevelDebug:
		level = color.MagentaString(level)
	case slog.LevelInfo:
		level = color.BlueString(level)
	case slog.LevelWarn:
		level = color.YellowString(level)
	case slog.LevelError:
		level = color.RedString(level)
	}

	fields := make(map[string]interface{}, r.NumAttrs()+len(handler.attrs))

	for _, a := range handler.attrs {
		fields[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()

		return true
	})

	var b []byte
	var err error

	if len(fields) > 0 {
		b, err = json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
	}

	timeStr := r.Time.Format("[15:04:05.000]")
	msg := color.CyanString(r.Message)

	handler.logger.Println(
		timeStr,
		level,
		msg,
		color.WhiteString(string(b)),
	)

	return nil
}

// WithAttrs returns a new CuteHandler with the given attributes added.
func (handler *CuteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CuteHandler{
		logger: handler.logger,
		level:  handler.level,
		attrs:  append(slices.Clip(handler.attrs), attrs...),
	}
}

// WithGroup is a no-op: attributes are always printed flat.
func (handler *CuteHandler) WithGroup(_ string) slog.Handler {
	return handler
}
