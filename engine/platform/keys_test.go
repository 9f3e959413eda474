package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/vignette/engine/core"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key    glfw.Key
		want   core.KeyCode
		wantOK bool
	}{
		{glfw.KeyA, core.KEY_A, true},
		{glfw.KeyZ, core.KEY_Z, true},
		{glfw.Key5, core.KEY_0 + 5, true},
		{glfw.KeyF24, core.KEY_F24, true},
		{glfw.KeyKP9, core.KEY_NUMPAD9, true},
		{glfw.KeyEscape, core.KEY_ESCAPE, true},
		{glfw.KeyRight, core.KEY_RIGHT, true},
		{glfw.KeyKPEnter, core.KEY_ENTER, true},
		{glfw.KeyWorld1, 0, false},
		{glfw.KeyUnknown, 0, false},
	}
	for _, tt := range tests {
		got, ok := translateKey(tt.key)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("translateKey(%d) = %v, %t, want %v, %t", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}
