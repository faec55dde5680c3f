package render

import "context"

type Renderer interface {
	RenderView(ctx context.Context, page ViewPage) ([]byte, error)
	RenderTag(ctx context.Context, page TagPage) ([]byte, error)
	RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error)
}
