package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type ctxFieldsKey struct{}

const (
	FieldModule = "module"
	FieldPath   = "markdown_path"
	FieldSlug   = "slug"
	FieldAction = "sync_action"
)

// WithFields returns logger annotated with fields when it implements
// interfaces.FieldsLogger. Other loggers are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}

// WithArticle tags logger with the file, slug and action of the article being
// processed. Blank values are left out.
func WithArticle(logger interfaces.Logger, path, slug, action string) interfaces.Logger {
	fields := make(map[string]any, 3)
	for key, value := range map[string]string{FieldPath: path, FieldSlug: slug, FieldAction: action} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}

// ContextWithFields stores fields on ctx for loggers bound with WithContext.
// Values already on ctx are kept unless fields overrides the same key.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, ctxFieldsKey{}, merged)
}

// ContextFields returns a copy of the fields stored on ctx, or nil.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(ctxFieldsKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
