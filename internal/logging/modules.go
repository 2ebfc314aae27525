package logging

import (
	"context"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Module names handed to the logger provider. Focus filters in the console
// provider match on these prefixes.
const (
	RootModule     = "blog"
	ArticlesModule = RootModule + ".articles"
	SearchModule   = RootModule + ".search"
	HTTPModule     = RootModule + ".http"
	MCPModule      = RootModule + ".mcp"
	MarkdownModule = RootModule + ".markdown"
)

// ModuleLogger asks provider for the named logger and tags it with the module
// name. A nil provider, or one that returns nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = RootModule
	}
	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{FieldModule: module})
}

func ArticlesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ArticlesModule)
}

func SearchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, SearchModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, HTTPModule)
}

func MCPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, MCPModule)
}

func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, MarkdownModule)
}

// NoOp discards everything.
func NoOp() interfaces.Logger { return discard{} }

type discard struct{}

var (
	_ interfaces.Logger       = discard{}
	_ interfaces.FieldsLogger = discard{}
)

func (discard) Trace(string, ...any)                            {}
func (discard) Debug(string, ...any)                            {}
func (discard) Info(string, ...any)                             {}
func (discard) Warn(string, ...any)                             {}
func (discard) Error(string, ...any)                            {}
func (discard) Fatal(string, ...any)                            {}
func (d discard) WithFields(map[string]any) interfaces.Logger   { return d }
func (d discard) WithContext(context.Context) interfaces.Logger { return d }
