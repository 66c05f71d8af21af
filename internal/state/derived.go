package state

// Derived is a read-only value computed from another Readable
type Derived[T any] struct {
	out  *Observable[T]
	stop func()
}

// Derive computes fn(src) now and again on every change of src
func Derive[S, T any](src Readable[S], fn func(S) T) *Derived[T] {
	var zero T
	d := &Derived[T]{out: NewObservable(zero)}
	d.stop = src.Subscribe(func(value S) {
		d.out.Set(fn(value))
	})
	return d
}

// Get returns the last computed value
func (d *Derived[T]) Get() T {
	return d.out.Get()
}

// Subscribe implements Readable
func (d *Derived[T]) Subscribe(fn func(T)) func() {
	return d.out.Subscribe(fn)
}

// Close detaches the derived value from its source. It keeps its last
// value.
func (d *Derived[T]) Close() {
	d.stop()
}
