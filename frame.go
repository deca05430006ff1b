package glbridge

import (
	"log/slog"

	"github.com/gogpu/glbridge/glcore"
)

// frameState is the open/closed flag of the frame lifecycle.
type frameState uint8

const (
	frameClosed frameState = iota
	frameOpen
)

// String returns the state name for diagnostics.
func (s frameState) String() string {
	if s == frameOpen {
		return "open"
	}
	return "closed"
}

// frameController guarantees exactly one begin and one submit per frame.
// The first draw or clear of a frame triggers the lazy begin; presenting
// while closed is a tolerated no-op, since a host may present a frame in
// which nothing was drawn.
type frameController struct {
	backend glcore.Backend
	state   frameState

	// onOpen runs after a successful downstream begin, before the first
	// draw or clear of the frame is forwarded.
	onOpen func()

	// onSubmit runs after every successful downstream submit.
	onSubmit func()

	framesBegun     uint64
	framesSubmitted uint64
}

// newFrameController creates a controller in the closed state.
func newFrameController(backend glcore.Backend) *frameController {
	return &frameController{backend: backend}
}

// ensureOpen issues the downstream begin-frame call if the frame is
// closed. Calling it again while open is a no-op; exactly one begin
// reaches the backend per frame.
func (f *frameController) ensureOpen() error {
	if f.state == frameOpen {
		return nil
	}
	if err := f.backend.BeginFrame(); err != nil {
		return err
	}
	f.state = frameOpen
	f.framesBegun++
	if f.onOpen != nil {
		f.onOpen()
	}
	return nil
}

// submit issues the downstream submit call if the frame is open and
// transitions back to closed. Submitting while closed is a no-op.
func (f *frameController) submit() error {
	if f.state == frameClosed {
		Logger().Debug("glbridge: present with no open frame", slog.Uint64("frames", f.framesSubmitted))
		return nil
	}
	if err := f.backend.SubmitFrame(); err != nil {
		return err
	}
	f.state = frameClosed
	f.framesSubmitted++
	if f.onSubmit != nil {
		f.onSubmit()
	}
	return nil
}

// isOpen reports whether a frame is currently recording.
func (f *frameController) isOpen() bool { return f.state == frameOpen }
