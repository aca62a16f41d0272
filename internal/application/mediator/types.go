package mediator

import "context"

// Request is any command or query value. Handlers are keyed by its dynamic type.
type Request interface{}

// Response is whatever the handler for a request returns
type Response interface{}

// RequestHandler serves one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a plain function to RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps the remainder of the chain. It may call next, replace its
// result, or return without calling it.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
