package app

import (
	"os"
	"strconv"

	"chroma-billboard/internal/generate"
)

// Config is read once at startup; nothing consults the environment after
// this point.
type Config struct {
	GenerateURL  string
	VideoFile    string
	CameraDevice int
}

func ConfigFromEnv() Config {
	config := Config{
		GenerateURL:  generate.DefaultBaseURL,
		CameraDevice: 0,
	}

	if url := os.Getenv("CHROMA_GENERATE_URL"); url != "" {
		config.GenerateURL = url
	}
	// Pre-fills the video file entry; nothing plays until the user asks.
	config.VideoFile = os.Getenv("CHROMA_VIDEO_FILE")
	if dev := os.Getenv("CHROMA_CAMERA_DEVICE"); dev != "" {
		if n, err := strconv.Atoi(dev); err == nil {
			config.CameraDevice = n
		}
	}
	return config
}
