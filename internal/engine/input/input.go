// Package input reads control axes from the SDL2 keyboard.
package input

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/followcam/internal/controls"
	"github.com/Faultbox/followcam/internal/logger"
)

func init() {
	// SDL video and event calls must stay on the thread that initialized video
	runtime.LockOSThread()
}

// axisScancodes holds the negative and positive key of one axis.
type axisScancodes [2]sdl.Scancode

// Keyboard is an AxisSource backed by the SDL2 keyboard state.
// SDL needs a focused window to deliver key events, so one is created.
type Keyboard struct {
	window *sdl.Window
	axes   [4]axisScancodes
}

// NewKeyboard initializes SDL2, opens a small window titled title and resolves
// the key bindings.
func NewKeyboard(title string, bindings controls.KeyBindings) (*Keyboard, error) {
	axes, err := resolve(bindings)
	if err != nil {
		return nil, err
	}

	logger.Info("initializing SDL2 input")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		320,
		240,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	logger.Debug("keyboard bound",
		zap.String("horizontal", bindings.Horizontal.Negative+"/"+bindings.Horizontal.Positive),
		zap.String("vertical", bindings.Vertical.Negative+"/"+bindings.Vertical.Positive),
		zap.String("horizontal2", bindings.Horizontal2.Negative+"/"+bindings.Horizontal2.Positive),
		zap.String("vertical2", bindings.Vertical2.Negative+"/"+bindings.Vertical2.Positive))

	return &Keyboard{window: window, axes: axes}, nil
}

func resolve(b controls.KeyBindings) ([4]axisScancodes, error) {
	var out [4]axisScancodes
	for i, keys := range []controls.AxisKeys{b.Horizontal, b.Vertical, b.Horizontal2, b.Vertical2} {
		for j, name := range []string{keys.Negative, keys.Positive} {
			code := sdl.GetScancodeFromName(name)
			if code == sdl.SCANCODE_UNKNOWN {
				return out, fmt.Errorf("unknown key name %q", name)
			}
			out[i][j] = code
		}
	}
	return out, nil
}

// Poll implements controls.AxisSource. It drains pending events and samples
// the keyboard. Closing the window or pressing Escape quits.
func (k *Keyboard) Poll() (controls.Axes, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return controls.Axes{}, true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return controls.Axes{}, true
			}
		}
	}

	state := sdl.GetKeyboardState()
	axis := func(a axisScancodes) float32 {
		return controls.DigitalAxis(state[a[0]] != 0, state[a[1]] != 0)
	}
	return controls.Axes{
		Horizontal:  axis(k.axes[0]),
		Vertical:    axis(k.axes[1]),
		Horizontal2: axis(k.axes[2]),
		Vertical2:   axis(k.axes[3]),
	}, false
}

// Close destroys the window and shuts SDL2 down.
func (k *Keyboard) Close() {
	logger.Info("closing SDL2 input")
	if k.window != nil {
		k.window.Destroy()
	}
	sdl.Quit()
}
