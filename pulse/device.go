package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

var wgpuLogLevels = map[string]wgpu.LogLevel{
	"OFF":   wgpu.LogLevelOff,
	"ERROR": wgpu.LogLevelError,
	"WARN":  wgpu.LogLevelWarn,
	"INFO":  wgpu.LogLevelInfo,
	"DEBUG": wgpu.LogLevelDebug,
	"TRACE": wgpu.LogLevelTrace,
}

func init() {
	name := os.Getenv("WGPU_LOG_LEVEL")
	if name == "" {
		return
	}

	level, ok := wgpuLogLevels[strings.ToUpper(name)]
	if !ok {
		slog.Warn("Ignoring unknown WGPU_LOG_LEVEL", slog.String("level", name))
		return
	}

	wgpu.SetLogLevel(level)
}

// Context bundles the device of a window surface with its queue, the adapter
// it was requested from and the samplers shared by all draw commands.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter

	samplers *SamplerCache
}

// NewContext requests an adapter and device that can present to the window
// described by desc.
func NewContext(desc *wgpu.SurfaceDescriptor) (*Context, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	ctx := &Context{Surface: instance.CreateSurface(desc)}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    ctx.Surface,
	})

	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	ctx.Adapter = adapter

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}

	ctx.Device = device
	ctx.Queue = device.GetQueue()
	ctx.samplers = NewSamplerCache(device, 16)

	return ctx, nil
}

// Sampler returns a cached sampler for the descriptor.
func (ctx *Context) Sampler(desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	return ctx.samplers.Get(desc)
}

// Encode records commands with fn and submits them to the queue. Passes
// begun in fn must be released before fn returns.
func (ctx *Context) Encode(label string, fn func(enc *wgpu.CommandEncoder) error) error {
	enc, err := ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("create encoder %q: %w", label, err)
	}

	defer enc.Release()

	if err := fn(enc); err != nil {
		return err
	}

	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("finish encoder %q: %w", label, err)
	}

	defer buf.Release()

	ctx.Queue.Submit(buf)

	return nil
}

// Release releases all resources in reverse order of creation.
// Releasing twice is a no-op.
func (ctx *Context) Release() {
	if ctx.samplers != nil {
		ctx.samplers.Release()
		ctx.samplers = nil
	}

	if ctx.Queue != nil {
		ctx.Queue.Release()
		ctx.Queue = nil
	}

	if ctx.Device != nil {
		ctx.Device.Release()
		ctx.Device = nil
	}

	if ctx.Adapter != nil {
		ctx.Adapter.Release()
		ctx.Adapter = nil
	}

	if ctx.Surface != nil {
		ctx.Surface.Release()
		ctx.Surface = nil
	}
}
