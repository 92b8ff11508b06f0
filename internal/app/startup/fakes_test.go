package startup

import (
	"context"

	"diagport/internal/domain"
)

type fakeEnv struct {
	vars map[string]string
}

func (f *fakeEnv) Lookup(name string) (string, bool) {
	value, ok := f.vars[name]
	return value, ok
}

type fakeController struct {
	notifyErr error
	notified  int
}

func (f *fakeController) NotifyCheckpoint(_ context.Context) error {
	f.notified++
	return f.notifyErr
}

type fakeServerController struct {
	controller domain.Controller
	err        error
	calls      []string
}

func (f *fakeServerController) Start(_ context.Context, url string) (domain.Controller, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.controller, nil
}

type fakeHandle struct {
	startErr error
	started  int
}

func (f *fakeHandle) Start(_ context.Context) error {
	f.started++
	return f.startErr
}

// fakeFactory declines configs named "decline", fails configs named "fail",
// hands out handles that fail to start for "stuck", and otherwise hands out
// fresh handles.
type fakeFactory struct {
	createErr error
	startErr  error
	handles   []*fakeHandle
	created   []domain.SessionConfig
}

func (f *fakeFactory) Create(_ context.Context, config domain.SessionConfig) (domain.SessionHandle, error) {
	f.created = append(f.created, config)
	switch config.Name {
	case "decline":
		return nil, nil
	case "fail":
		return nil, f.createErr
	}
	handle := &fakeHandle{}
	if config.Name == "stuck" {
		handle.startErr = f.startErr
	}
	f.handles = append(f.handles, handle)
	return handle, nil
}
