package repokit

// Binder is a tiny factory that binds a domain repo to a specific store handle
type Binder[T any] interface {
	Bind(FS) T
}

// BindFunc lets you create a Binder from a function
type BindFunc[T any] func(FS) T

// Bind calls the underlying function
func (f BindFunc[T]) Bind(fs FS) T { return f(fs) }

// RequireFS panics early on programmer error (nil store)
func RequireFS(fs FS) FS {
	if fs == nil {
		panic("repokit: nil store")
	}
	return fs
}

// MustBind is a convenience that validates the handle then binds
func MustBind[T any](b Binder[T], fs FS) T {
	return b.Bind(RequireFS(fs))
}
