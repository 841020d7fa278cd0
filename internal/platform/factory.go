package platform

import (
	"github.com/aretw0/jotter/pkg/core"
)

// New opens the store at uri and wraps it in a Service.
//
//	svc, err := jotter.New("~/.jotter/data", jotter.WithAdapter("bolt"))
//
// The caller owns the service and must Close it.
func New(uri string, opts ...Option) (*core.Service, error) {
	store, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	svcOpts := []core.ServiceOption{core.WithServiceLogger(o.logger)}
	if o.clock != nil {
		svcOpts = append(svcOpts, core.WithClock(o.clock))
	}
	return core.NewService(store, svcOpts...), nil
}
