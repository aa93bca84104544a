package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TextureSet names the six PBR maps of one surface, relative to the asset root.
type TextureSet struct {
	BaseColor        string `yaml:"base_color"`
	AmbientOcclusion string `yaml:"ambient_occlusion"`
	Height           string `yaml:"height"`
	Metallic         string `yaml:"metallic"`
	Roughness        string `yaml:"roughness"`
	Normal           string `yaml:"normal"`
}

// Paths returns the maps in load order.
func (s TextureSet) Paths() []string {
	return []string{s.BaseColor, s.AmbientOcclusion, s.Height, s.Metallic, s.Roughness, s.Normal}
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	// Upper bound for the device pixel ratio applied to the renderer.
	MaxPixelRatio float32 `yaml:"max_pixel_ratio"`
	// Two presses closer than this form a double-click.
	DoubleClickInterval time.Duration `yaml:"double_click_interval"`
}

type AssetConfig struct {
	Root           string     `yaml:"root"`
	Sphere         TextureSet `yaml:"sphere"`
	Plane          TextureSet `yaml:"plane"`
	DecodeWorkers  int        `yaml:"decode_workers"`
	CacheSize      int        `yaml:"cache_size"`
	MaxTextureSize int        `yaml:"max_texture_size"`
}

type SceneConfig struct {
	// Seed for point light placement. Zero picks a time based seed.
	Seed             int64   `yaml:"seed"`
	PointLights      int     `yaml:"point_lights"`
	PointIntensity   float32 `yaml:"point_intensity"`
	LightSpread      float32 `yaml:"light_spread"`
	AmbientIntensity float32 `yaml:"ambient_intensity"`
	SpinX            float32 `yaml:"spin_x"`
	SpinY            float32 `yaml:"spin_y"`
	CameraFov        float32 `yaml:"camera_fov"`
	CameraDistance   float32 `yaml:"camera_distance"`
}

type Config struct {
	Window     WindowConfig `yaml:"window"`
	Assets     AssetConfig  `yaml:"assets"`
	Scene      SceneConfig  `yaml:"scene"`
	ShowPanel  bool         `yaml:"show_panel"`
	LogLevel   string       `yaml:"log_level"`
	Profile    bool         `yaml:"profile"`
	ProfileDir string       `yaml:"profile_dir"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:               1024,
			Height:              768,
			Title:               "PBR Showcase",
			VSync:               true,
			MaxPixelRatio:       2,
			DoubleClickInterval: 400 * time.Millisecond,
		},
		Assets: AssetConfig{
			Root: "static",
			Sphere: TextureSet{
				BaseColor:        "/generative/Abstract_011_basecolor.jpg",
				AmbientOcclusion: "/generative/Abstract_011_ambientOcclusion.jpg",
				Height:           "/generative/Abstract_011_height.png",
				Metallic:         "/generative/Abstract_011_metallic.jpg",
				Roughness:        "/generative/Abstract_011_roughness.jpg",
				Normal:           "/generative/Abstract_011_normal.jpg",
			},
			Plane: TextureSet{
				BaseColor:        "/metal/Metal_scratched_009_basecolor.jpg",
				AmbientOcclusion: "/metal/Metal_scratched_009_ambientOcclusion.jpg",
				Height:           "/metal/Metal_scratched_009_height.png",
				Metallic:         "/metal/Metal_scratched_009_metallic.jpg",
				Roughness:        "/metal/Metal_scratched_009_roughness.jpg",
				Normal:           "/metal/Metal_scratched_009_normal.jpg",
			},
			DecodeWorkers:  4,
			CacheSize:      32,
			MaxTextureSize: 4096,
		},
		Scene: SceneConfig{
			PointLights:      5,
			PointIntensity:   0.25,
			LightSpread:      10,
			AmbientIntensity: 0.7,
			SpinX:            0.1,
			SpinY:            0.25,
			CameraFov:        75,
			CameraDistance:   3,
		},
		ShowPanel:  true,
		LogLevel:   "info",
		ProfileDir: ".",
	}
}

// Load reads a YAML file on top of the defaults. A missing file is not an
// error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.MaxPixelRatio < 1:
		return fmt.Errorf("max_pixel_ratio must be at least 1, got %v", c.Window.MaxPixelRatio)
	case c.Scene.PointLights < 0 || c.Scene.PointLights > MaxPointLights:
		return fmt.Errorf("point_lights must be in [0,%d], got %d", MaxPointLights, c.Scene.PointLights)
	case c.Assets.DecodeWorkers <= 0:
		return fmt.Errorf("decode_workers must be positive, got %d", c.Assets.DecodeWorkers)
	case c.Assets.CacheSize <= 0:
		return fmt.Errorf("cache_size must be positive, got %d", c.Assets.CacheSize)
	}
	return nil
}

// MaxPointLights matches the size of the point light array in the PBR shader.
const MaxPointLights = 8
