package queue

type options struct {
	capacity int
}

// Option applies a configuration option to the in-memory queue.
type Option func(*options)

// WithCapacity sets the queue's buffer capacity.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}
