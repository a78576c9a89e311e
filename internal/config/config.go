// Package config loads runtime settings from the environment. An optional
// .env file in the working directory is read first; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// goos is swapped in tests.
var goos = runtime.GOOS

type Config struct {
	// Capture
	CameraID    int
	FrameWidth  int
	FrameHeight int
	FPS         int
	ShowWindow  bool

	// Plate tracking
	DirectionFile      string
	PlateUDP           bool
	DirectionThreshold int
	BoundsCheck        bool
	MinRadius          int
	MaxRadius          int
	RefineTolerance    float64
	HoughDP            float64
	HoughMinDist       float64
	HoughParam1        float64
	HoughParam2        float64
	BlurKernel         int
	BlurSigma          float64

	// Hand steering
	UDPEnabled        bool
	UDPAddr           string
	OpenPalmThreshold float64
	Zones             int
	MaxHands          int
	MinDetectionConf  float64
	MinTrackingConf   float64
	KeysEnabled       bool
	KeyMode           string
	MotionThreshold   float64

	// Extras
	MonitorAddr string
	Tray        bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		CameraID:    getEnvAsInt("CAMERA_ID", 0),
		FrameWidth:  getEnvAsInt("FRAME_WIDTH", 640),
		FrameHeight: getEnvAsInt("FRAME_HEIGHT", 480),
		FPS:         getEnvAsInt("FPS", 30),
		ShowWindow:  getEnvAsBool("SHOW_WINDOW", true),

		DirectionFile:      getEnv("DIRECTION_FILE", "direction.txt"),
		PlateUDP:           getEnvAsBool("PLATE_UDP", false),
		DirectionThreshold: getEnvAsInt("DIRECTION_THRESHOLD", 10),
		BoundsCheck:        getEnvAsBool("BOUNDS_CHECK", true),
		MinRadius:          getEnvAsInt("MIN_RADIUS", 15),
		MaxRadius:          getEnvAsInt("MAX_RADIUS", 300),
		RefineTolerance:    getEnvAsFloat("REFINE_TOLERANCE", 0.1),
		HoughDP:            getEnvAsFloat("HOUGH_DP", 1.2),
		HoughMinDist:       getEnvAsFloat("HOUGH_MIN_DIST", 50),
		HoughParam1:        getEnvAsFloat("HOUGH_PARAM1", 50),
		HoughParam2:        getEnvAsFloat("HOUGH_PARAM2", 30),
		BlurKernel:         getEnvAsInt("BLUR_KERNEL", 9),
		BlurSigma:          getEnvAsFloat("BLUR_SIGMA", 2),

		UDPEnabled:        getEnvAsBool("UDP_ENABLED", true),
		UDPAddr:           getEnv("UDP_ADDR", "127.0.0.1:12345"),
		OpenPalmThreshold: getEnvAsFloat("OPEN_PALM_THRESHOLD", 0.1),
		Zones:             getEnvAsInt("ZONES", 3),
		MaxHands:          getEnvAsInt("MAX_HANDS", 2),
		MinDetectionConf:  getEnvAsFloat("MIN_DETECTION_CONFIDENCE", 0.7),
		MinTrackingConf:   getEnvAsFloat("MIN_TRACKING_CONFIDENCE", 0.7),
		KeysEnabled:       getEnvAsBool("KEYS_ENABLED", false),
		KeyMode:           getEnv("KEY_MODE", "hold"),
		MotionThreshold:   getEnvAsFloat("MOTION_THRESHOLD", 0),

		MonitorAddr: getEnv("MONITOR_ADDR", ""),
		Tray:        getEnvAsBool("TRAY", false),
	}
}

// Validate rejects settings no loop can run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.CameraID >= 0, "CAMERA_ID must be >= 0, got %d", c.CameraID)
	check(c.FPS > 0, "FPS must be positive, got %d", c.FPS)
	check(c.DirectionFile != "", "DIRECTION_FILE must not be empty")
	check(c.DirectionThreshold >= 0, "DIRECTION_THRESHOLD must be >= 0, got %d", c.DirectionThreshold)
	check(c.MinRadius > 0, "MIN_RADIUS must be positive, got %d", c.MinRadius)
	check(c.MaxRadius >= c.MinRadius, "MAX_RADIUS (%d) must be >= MIN_RADIUS (%d)", c.MaxRadius, c.MinRadius)
	check(c.RefineTolerance > 0 && c.RefineTolerance < 1, "REFINE_TOLERANCE must be in (0, 1), got %g", c.RefineTolerance)
	check(c.HoughDP > 0, "HOUGH_DP must be positive, got %g", c.HoughDP)
	check(c.BlurKernel > 0 && c.BlurKernel%2 == 1, "BLUR_KERNEL must be a positive odd number, got %d", c.BlurKernel)
	check(c.Zones == 2 || c.Zones == 3, "ZONES must be 2 or 3, got %d", c.Zones)
	check(c.MaxHands > 0, "MAX_HANDS must be positive, got %d", c.MaxHands)
	check(inUnit(c.MinDetectionConf), "MIN_DETECTION_CONFIDENCE must be in [0, 1], got %g", c.MinDetectionConf)
	check(inUnit(c.MinTrackingConf), "MIN_TRACKING_CONFIDENCE must be in [0, 1], got %g", c.MinTrackingConf)
	check(c.OpenPalmThreshold > 0, "OPEN_PALM_THRESHOLD must be positive, got %g", c.OpenPalmThreshold)
	check(c.KeyMode == "hold" || c.KeyMode == "press", "KEY_MODE must be hold or press, got %q", c.KeyMode)
	check(c.MotionThreshold >= 0, "MOTION_THRESHOLD must be >= 0, got %g", c.MotionThreshold)
	if c.UDPEnabled || c.PlateUDP {
		check(strings.Contains(c.UDPAddr, ":"), "UDP_ADDR must be host:port, got %q", c.UDPAddr)
	}
	// The tray takes the main thread, and Cocoa only draws windows from it.
	if c.Tray && c.ShowWindow {
		check(goos != "darwin", "TRAY and SHOW_WINDOW cannot both be enabled on darwin")
	}

	return errors.Join(errs...)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
