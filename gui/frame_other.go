//go:build !windows

package gui

func newFrame(string, func(string), func()) (frame, error) {
	return nil, ErrUnsupported
}
