package infinityrunner

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects which revision of the scene is built.
type Mode string

const (
	// ModePrimitive builds a single box inline, nothing is loaded.
	ModePrimitive Mode = "primitive"
	// ModeShowcase loads the plane box and dome models.
	ModeShowcase Mode = "showcase"
	// ModeRunner is ModeShowcase plus the walking player and trailing camera.
	ModeRunner Mode = "runner"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePrimitive, ModeShowcase, ModeRunner:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want primitive, showcase or runner)", s)
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	// Height is the absolute camera y while trailing the player.
	Height float64 `yaml:"height"`
	// Trail is the camera z offset behind the player.
	Trail float64 `yaml:"trail"`
}

type PlayerConfig struct {
	// Step is the distance walked along +X every frame.
	Step float64 `yaml:"step"`
}

type Config struct {
	Window    WindowConfig `yaml:"window"`
	Mode      Mode         `yaml:"mode"`
	AssetsDir string       `yaml:"assets_dir"`
	Camera    CameraConfig `yaml:"camera"`
	Player    PlayerConfig `yaml:"player"`
	Outlines  bool         `yaml:"outlines"`
	Debug     bool         `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "Infinity Runner",
		},
		Mode: ModeRunner,
		Camera: CameraConfig{
			FieldOfView: 67,
			Near:        1,
			Far:         500,
			Height:      10,
			Trail:       10,
		},
		Player: PlayerConfig{
			Step: 1,
		},
		Outlines: true,
	}
}

// LoadConfig reads a YAML config over the defaults. A missing file is not
// an error and yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		return fmt.Errorf("field of view must be in (0, 180), got %v", c.Camera.FieldOfView)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("clip planes must satisfy 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Player.Step <= 0 {
		return fmt.Errorf("player step must be positive, got %v", c.Player.Step)
	}
	return nil
}
