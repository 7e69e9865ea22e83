package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyF, glfw.Press)
	if !im.JustPressed(ActionToggleWireframe) || !im.IsActive(ActionToggleWireframe) {
		t.Fatalf("Expected wireframe toggle to be pressed")
	}

	im.PostUpdate()
	if im.JustPressed(ActionToggleWireframe) {
		t.Errorf("Expected edge to clear after PostUpdate")
	}

	// Repeat keeps the key held without a new edge
	im.HandleKeyEvent(glfw.KeyF, glfw.Repeat)
	if im.JustPressed(ActionToggleWireframe) {
		t.Errorf("Repeat must not produce a new press edge")
	}

	im.HandleKeyEvent(glfw.KeyF, glfw.Release)
	if !im.JustReleased(ActionToggleWireframe) || im.IsActive(ActionToggleWireframe) {
		t.Errorf("Expected release edge")
	}
}

func TestUnboundAndInvalid(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	for a := Action(0); a < ActionCount; a++ {
		if im.IsActive(a) {
			t.Errorf("Unbound key activated action %d", a)
		}
	}
	if im.IsActive(ActionCount) || im.JustPressed(-1) || im.JustReleased(ActionCount) {
		t.Errorf("Out of range actions must report false")
	}

	im.BindKey(glfw.KeyZ, ActionQuit)
	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	if !im.JustPressed(ActionQuit) {
		t.Errorf("Expected rebound key to trigger quit")
	}
	im.UnbindKey(glfw.KeyZ)
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyZ, glfw.Release)
	if im.JustReleased(ActionQuit) {
		t.Errorf("Unbound key must not produce edges")
	}
}

func TestDragOnlyWhileRotating(t *testing.T) {
	im := NewInputManager()

	im.HandleCursorPos(100, 100)
	im.HandleCursorPos(120, 90)
	if dx, dy := im.Drag(); dx != 0 || dy != 0 {
		t.Errorf("Expected no drag without button, got %v,%v", dx, dy)
	}

	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	im.HandleCursorPos(130, 95)
	im.HandleCursorPos(140, 100)
	if dx, dy := im.Drag(); dx != 20 || dy != 10 {
		t.Errorf("Expected drag 20,10, got %v,%v", dx, dy)
	}

	x, y, ok := im.Cursor()
	if !ok || x != 140 || y != 100 {
		t.Errorf("Expected cursor at 140,100, got %v,%v,%v", x, y, ok)
	}

	im.HandleScroll(1)
	im.HandleScroll(0.5)
	if s := im.Scroll(); s != 1.5 {
		t.Errorf("Expected scroll 1.5, got %v", s)
	}

	im.PostUpdate()
	if dx, dy := im.Drag(); dx != 0 || dy != 0 {
		t.Errorf("Expected drag reset, got %v,%v", dx, dy)
	}
	if im.Scroll() != 0 {
		t.Errorf("Expected scroll reset")
	}
}
