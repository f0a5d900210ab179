package event

import (
	qfs "github.com/viant/pact/service/messaging/fs"
	"github.com/viant/pact/service/messaging/memory"
)

type options struct {
	memoryConfig memory.Config
	fsConfig     qfs.Config
}

type Option func(o *options)

// WithMemoryQueueConfig overrides the memory queue configuration.
func WithMemoryQueueConfig(config memory.Config) Option {
	return func(o *options) {
		o.memoryConfig = config
	}
}

// WithFsQueueConfig overrides the filesystem queue configuration.
func WithFsQueueConfig(config qfs.Config) Option {
	return func(o *options) {
		o.fsConfig = config
	}
}

func newOptions(opts []Option) *options {
	ret := &options{
		memoryConfig: memory.DefaultConfig(),
		fsConfig:     qfs.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
