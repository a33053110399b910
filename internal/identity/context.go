package identity

import "context"

type ctxKey struct{}

// WithUser adjunta la identidad resuelta al contexto.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom retorna la identidad del contexto o nil.
func UserFrom(ctx context.Context) *User {
	u, _ := ctx.Value(ctxKey{}).(*User)
	return u
}
