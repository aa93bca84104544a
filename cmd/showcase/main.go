package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"PBRShowcase/internal/behaviour"
	"PBRShowcase/internal/config"
	"PBRShowcase/internal/debugui"
	"PBRShowcase/internal/engine"
	"PBRShowcase/internal/loader"
	"PBRShowcase/internal/logger"
	"PBRShowcase/internal/renderer"
	"PBRShowcase/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func init() {
	// GLFW event handling and GL calls must run on the main thread
	runtime.LockOSThread()
}

type flags struct {
	set *flag.FlagSet

	configPath string
	assets     string
	width      int
	height     int
	seed       int64
	logLevel   string
	profile    bool
}

func parseFlags(args []string) (flags, error) {
	f := flags{set: flag.NewFlagSet("showcase", flag.ContinueOnError)}
	f.set.StringVar(&f.configPath, "config", "showcase.yaml", "path to a YAML config file")
	f.set.StringVar(&f.assets, "assets", "", "texture root directory")
	f.set.IntVar(&f.width, "width", 0, "window width")
	f.set.IntVar(&f.height, "height", 0, "window height")
	f.set.Int64Var(&f.seed, "seed", 0, "point light seed, 0 for random")
	f.set.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	f.set.BoolVar(&f.profile, "profile", false, "write a CPU profile")
	err := f.set.Parse(args)
	return f, err
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "assets":
			cfg.Assets.Root = f.assets
		case "width":
			cfg.Window.Width = f.width
		case "height":
			cfg.Window.Height = f.height
		case "seed":
			cfg.Scene.Seed = f.seed
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "profile":
			cfg.Profile = f.profile
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code.
func realMain() int {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		return 2
	}
	cfg, err := loadConfig(f)
	logger.InitWithLevel(cfg.LogLevel)
	defer logger.Sync()
	if err != nil {
		logger.Log.Error("Invalid configuration", zap.Error(err))
		return 1
	}

	if cfg.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.ProfileDir), profile.Quiet).Stop()
	}

	if err := run(cfg); err != nil {
		logger.Log.Error("Showcase failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg config.Config) (err error) {
	window, err := engine.OpenWindow(engine.WindowOptions{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	rend := renderer.NewOpenGLRenderer()
	if err := rend.Init(); err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	defer func() {
		err = multierr.Append(err, rend.Dispose())
	}()
	rend.SetFramebufferSource(window.FramebufferSize)

	manager := loader.NewLoadingManager()
	manager.OnLoad = func() {
		logger.Log.Info("All textures decoded")
	}
	textures, err := loader.NewTextureLoader(os.DirFS(cfg.Assets.Root), manager, loader.Options{
		Workers:        cfg.Assets.DecodeWorkers,
		CacheSize:      cfg.Assets.CacheSize,
		MaxTextureSize: cfg.Assets.MaxTextureSize,
	})
	if err != nil {
		return fmt.Errorf("texture loader: %w", err)
	}
	defer textures.Close()

	width, height := window.Size()
	aspect := engine.Viewport{Width: width, Height: height}.Aspect()
	built := scene.Build(cfg.Scene,
		scene.LoadTextureSet(textures, cfg.Assets.Sphere),
		scene.LoadTextureSet(textures, cfg.Assets.Plane),
		aspect, scene.NewRand(cfg.Scene.Seed))
	logger.Log.Info("Scene built",
		zap.Int("pointLights", len(built.Lights)),
		zap.Int64("seed", cfg.Scene.Seed))

	ctx := engine.NewContext(built.Scene, built.Camera, rend)
	controls := renderer.NewOrbitControls(built.Camera)
	ctx.Behaviours.Add(behaviour.NewSpin(&built.Sphere.Object3D, cfg.Scene.SpinX, cfg.Scene.SpinY))
	ctx.Behaviours.Add(behaviour.OrbitControls{Controls: controls})

	viewport := engine.NewViewportManager(ctx, cfg.Window.MaxPixelRatio)
	viewport.OnResize(func(v engine.Viewport) {
		controls.SetViewportHeight(v.Height)
	})
	viewport.HandleResize(width, height, window.ContentScale())
	window.OnResize(viewport.HandleResize)

	panel := debugui.NewPanel("Debug")
	panel.Visible = cfg.ShowPanel
	panel.Add("metalness", &built.SphereMaterial.Metalness).Min(0).Max(1).Step(0.0001)
	panel.Add("roughness", &built.SphereMaterial.Roughness).Min(0).Max(1).Step(0.0001)

	ui, err := debugui.NewUI(window.GLFW(), panel)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, ui.Dispose())
	}()
	ui.SetStats(func() (int, int) {
		stats := rend.Stats()
		return stats.DrawCalls, stats.Triangles
	})

	loop := engine.NewLoop(ctx, engine.NewGLFWClock(), window)
	loop.SetOnFrame(ui.Frame)

	keys := engine.NewKeyBindings()
	keys.Bind(glfw.KeyH, ui.Toggle)
	keys.Bind(glfw.KeyEscape, loop.Stop)

	input := engine.NewInput()
	input.SetUI(ui.Input(), ui.WantCaptureMouse, ui.WantCaptureKeyboard)
	input.Add(&engine.OrbitInput{Controls: controls})
	input.Add(engine.NewDoubleClickInput(
		engine.NewDoubleClickDetector(cfg.Window.DoubleClickInterval),
		engine.NewFullscreenToggle(window)))
	input.Add(keys)
	input.Attach(window.GLFW())

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := loop.Run(runCtx); err != nil && runCtx.Err() == nil {
		return err
	}
	rend.Textures().LogStats()
	logger.Log.Info("Showcase closed", zap.Int64("frames", loop.Frames()))
	return nil
}
