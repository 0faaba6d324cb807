package application

import "context"

// Command es la intención de cambiar estado.
type Command interface{}

// Query es una petición de lectura sin efectos.
type Query interface{}

type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// CommandHandlerFunc adapta una función a CommandHandler.
type CommandHandlerFunc[C Command, R any] func(ctx context.Context, cmd C) (R, error)

func (f CommandHandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// QueryHandlerFunc adapta una función a QueryHandler.
type QueryHandlerFunc[Q Query, R any] func(ctx context.Context, q Q) (R, error)

func (f QueryHandlerFunc[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	return f(ctx, q)
}

// QueryView es el nivel de detalle de una proyección de lectura.
type QueryView string

const (
	ViewSummary  QueryView = "SUMMARY"
	ViewDetailed QueryView = "DETAILED"
	ViewFull     QueryView = "FULL"
)

// ParseQueryView devuelve SUMMARY para valores desconocidos o vacíos.
func ParseQueryView(s string) QueryView {
	switch QueryView(s) {
	case ViewDetailed, ViewFull:
		return QueryView(s)
	default:
		return ViewSummary
	}
}
