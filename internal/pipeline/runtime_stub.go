//go:build !govips || !cgo

package pipeline

func Startup() error {
	return nil
}

func Shutdown() {}

func newRenderer() (Renderer, error) {
	return lanczosRenderer{}, nil
}
