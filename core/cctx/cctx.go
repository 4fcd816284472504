package cctx

// Context request context
type Context struct{}

// New new context
func New() *Context {
	return &Context{}
}
