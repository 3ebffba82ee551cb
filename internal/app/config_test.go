package app

import (
	"testing"

	"chroma-billboard/internal/generate"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("CHROMA_GENERATE_URL", "")
	t.Setenv("CHROMA_VIDEO_FILE", "")
	t.Setenv("CHROMA_CAMERA_DEVICE", "")

	config := ConfigFromEnv()
	if config.GenerateURL != generate.DefaultBaseURL {
		t.Errorf("GenerateURL = %q, want default", config.GenerateURL)
	}
	if config.VideoFile != "" {
		t.Errorf("VideoFile = %q, want empty", config.VideoFile)
	}
	if config.CameraDevice != 0 {
		t.Errorf("CameraDevice = %d, want 0", config.CameraDevice)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("CHROMA_GENERATE_URL", "http://localhost:9090")
	t.Setenv("CHROMA_VIDEO_FILE", "/media/clip.mp4")
	t.Setenv("CHROMA_CAMERA_DEVICE", "2")

	config := ConfigFromEnv()
	if config.GenerateURL != "http://localhost:9090" {
		t.Errorf("GenerateURL = %q, want override", config.GenerateURL)
	}
	if config.VideoFile != "/media/clip.mp4" {
		t.Errorf("VideoFile = %q, want override", config.VideoFile)
	}
	if config.CameraDevice != 2 {
		t.Errorf("CameraDevice = %d, want 2", config.CameraDevice)
	}
}

func TestConfigIgnoresBadDeviceNumber(t *testing.T) {
	t.Setenv("CHROMA_CAMERA_DEVICE", "not-a-number")

	if got := ConfigFromEnv().CameraDevice; got != 0 {
		t.Errorf("CameraDevice = %d, want fallback 0", got)
	}
}
