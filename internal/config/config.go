package config

import "sync"

// RenderSettings holds runtime-tweakable render configuration
type RenderSettings struct {
	mu        sync.RWMutex
	fpsLimit  int // 0 = unlimited
	vsync     bool
	wireframe bool // forces every mesh to draw as wireframe
	logCursor bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit: 0,
	vsync:    true,
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetVSync reports whether buffer swaps wait for the display refresh
func GetVSync() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.vsync
}

// SetVSync enables or disables waiting for the display refresh
func SetVSync(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.vsync = enabled
}

// GetWireframeOverride reports whether all meshes are forced to wireframe
func GetWireframeOverride() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframe
}

// ToggleWireframeOverride flips the global wireframe override
func ToggleWireframeOverride() {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframe = !globalRenderSettings.wireframe
}

// GetLogCursor reports whether cursor movement is printed
func GetLogCursor() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.logCursor
}

// SetLogCursor enables cursor logging
func SetLogCursor(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.logCursor = enabled
}
