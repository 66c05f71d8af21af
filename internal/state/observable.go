package state

import "sync"

// Readable is a value that can be read and watched
type Readable[T any] interface {
	Get() T
	// Subscribe calls fn now and after every change, until the returned
	// function is called
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Observable is a mutable value with change subscriptions
type Observable[T any] struct {
	mu     sync.Mutex
	value  T
	subs   []subscriber[T]
	nextID int
}

// NewObservable creates an Observable holding initial
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial}
}

// Get returns the current value
func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set replaces the value and notifies subscribers
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	o.value = value
	subs := o.snapshot()
	o.mu.Unlock()

	notify(subs, value)
}

// Update replaces the value with fn(current) and notifies subscribers
func (o *Observable[T]) Update(fn func(T) T) {
	o.mu.Lock()
	value := fn(o.value)
	o.value = value
	subs := o.snapshot()
	o.mu.Unlock()

	notify(subs, value)
}

// Subscribe implements Readable
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
	value := o.value
	o.mu.Unlock()

	fn(value)

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			for i, s := range o.subs {
				if s.id == id {
					o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of active subscriptions
func (o *Observable[T]) Subscribers() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}

// snapshot must be called with o.mu held
func (o *Observable[T]) snapshot() []subscriber[T] {
	subs := make([]subscriber[T], len(o.subs))
	copy(subs, o.subs)
	return subs
}

func notify[T any](subs []subscriber[T], value T) {
	for _, s := range subs {
		s.fn(value)
	}
}
