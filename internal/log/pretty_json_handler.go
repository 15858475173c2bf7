package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
)

type PrettyJSONHandlerOptions struct {
	slog.HandlerOptions
	PrettyPrint bool
}

func NewPrettyJSONHandler(w io.Writer, opts *PrettyJSONHandlerOptions) slog.Handler {
	if opts == nil {
		opts = &PrettyJSONHandlerOptions{}
	}

	return &prettyHandler{
		Handler:        slog.NewJSONHandler(w, &opts.HandlerOptions),
		writer:         w,
		prettyPrint:    opts.PrettyPrint,
		handlerOptions: &opts.HandlerOptions,
	}
}

type prettyHandler struct {
	slog.Handler
	writer         io.Writer
	prettyPrint    bool
	handlerOptions *slog.HandlerOptions
	// derivations replays WithAttrs and WithGroup calls on the buffered handler used for pretty printing
	derivations []func(slog.Handler) slog.Handler
}

func (h *prettyHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.prettyPrint {
		return h.Handler.Handle(ctx, r)
	}

	buf := &bytes.Buffer{}

	var tempHandler slog.Handler = slog.NewJSONHandler(buf, h.handlerOptions)
	for _, derive := range h.derivations {
		tempHandler = derive(tempHandler)
	}
	if err := tempHandler.Handle(ctx, r); err != nil {
		return err
	}

	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, buf.Bytes(), "", "  "); err != nil {
		return err
	}

	_, err := h.writer.Write(prettyJSON.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler {
		return handler.WithAttrs(attrs)
	})
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(handler slog.Handler) slog.Handler {
		return handler.WithGroup(name)
	})
}

func (h *prettyHandler) derive(f func(slog.Handler) slog.Handler) slog.Handler {
	derived := *h
	derived.Handler = f(h.Handler)
	derived.derivations = append(slices.Clip(h.derivations), f)
	return &derived
}
