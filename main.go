/*
vignette runs the testbed states on a GLFW window with the Vulkan renderer,
or headless with -headless.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spaghettifunk/vignette/engine"
	"github.com/spaghettifunk/vignette/engine/assets"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/debugui"
	"github.com/spaghettifunk/vignette/engine/jobs"
	"github.com/spaghettifunk/vignette/engine/platform"
	"github.com/spaghettifunk/vignette/engine/platform/headless"
	"github.com/spaghettifunk/vignette/engine/renderer"
	headlessrenderer "github.com/spaghettifunk/vignette/engine/renderer/headless"
	"github.com/spaghettifunk/vignette/engine/renderer/vulkan"
	"github.com/spaghettifunk/vignette/testbed"
)

func main() {
	var configPath string
	var runHeadless bool
	var frames int

	flag.StringVar(&configPath, "config", "", "path to a TOML config file (default: built-in defaults)")
	flag.BoolVar(&runHeadless, "headless", false, "run without a window or GPU")
	flag.IntVar(&frames, "frames", 0, "stop after this many frames when headless (0 = until interrupted)")
	flag.Parse()

	if err := run(configPath, runHeadless, frames); err != nil {
		core.LogFatal("%s", err)
	}
}

func run(configPath string, runHeadless bool, frames int) error {
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Log.Level != "" {
		if err := core.SetLogLevel(cfg.Log.Level); err != nil {
			return err
		}
	}

	events := core.NewEventBus()
	input := core.NewInput(events)

	var window engine.Window
	var graphics renderer.Backend
	if runHeadless {
		window = headless.New(input, frames)
		graphics = headlessrenderer.New()
	} else {
		window = platform.New(input, events)
		graphics = vulkan.New()
	}

	opts := []engine.Option{
		engine.WithWindow(window),
		engine.WithGraphics(graphics),
		engine.WithInput(input),
		engine.WithEvents(events),
	}
	if cfg.Debug.Overlay {
		interval := time.Duration(cfg.Debug.OverlayInterval * float64(time.Second))
		opts = append(opts, engine.WithOverlay(debugui.NewConsole(os.Stdout, interval)))
	}

	var am *assets.Manager
	if cfg.Assets.Root != "" {
		js, err := jobs.NewJobSystem(core.Clamp(runtime.NumCPU()/2, 1, 4), 16)
		if err != nil {
			return err
		}
		defer js.Shutdown()

		am = assets.NewManager(cfg.Assets.Root, js)
		if err := am.Initialize(cfg.Assets.Watch); err != nil {
			return fmt.Errorf("failed to initialize assets: %w", err)
		}
		defer am.Shutdown()
		opts = append(opts, engine.WithAssets(am))
	}

	app := engine.New(opts...)
	if err := testbed.Register(app, testbed.StateNames(am)); err != nil {
		return err
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		app.Quit()
	}()

	return app.Run(cfg)
}
