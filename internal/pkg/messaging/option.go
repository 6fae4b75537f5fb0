package messaging

type consumeOptions struct {
	concurrency int
	group       string
}

// ConsumeOption configures Consume.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	co := consumeOptions{concurrency: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	if co.concurrency < 1 {
		co.concurrency = 1
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in
// parallel. With Kafka, values above 1 may commit offsets out of order.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup sets the Kafka consumer group or the NATS queue group, so that
// each message is handled by one instance of the group.
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}
