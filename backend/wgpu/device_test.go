package wgpu

import (
	"errors"
	"testing"
)

func TestNewDeviceRequiresDeviceAndQueue(t *testing.T) {
	if _, err := NewDevice(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewDevice(nil, nil) error = %v, want ErrNilDevice", err)
	}
}
