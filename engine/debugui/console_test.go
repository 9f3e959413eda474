package debugui

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func newTestConsole(interval time.Duration) (*Console, *bytes.Buffer, *fakeClock) {
	var out bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	c := NewConsole(&out, interval)
	c.SetClock(clock.now)
	return c, &out, clock
}

func drawFrame(o Overlay, fps int) {
	o.BeginRender()
	o.Header("Stats")
	o.Value("fps", fps)
	o.Value("frame ms", "16.6")
	o.Separator()
	o.Text("state %s", "dawn")
	o.EndRender()
}

func TestConsoleRendersPanel(t *testing.T) {
	c, out, _ := newTestConsole(time.Second)
	drawFrame(c, 60)

	if c.Rendered() != 1 {
		t.Fatalf("Rendered() = %d, want 1", c.Rendered())
	}
	got := ansi.ReplaceAllString(out.String(), "")
	for _, want := range []string{"╭", "Stats", "fps       60", "frame ms  16.6", "state dawn", "─"} {
		if !strings.Contains(got, want) {
			t.Errorf("panel does not contain %q:\n%s", want, got)
		}
	}
}

func TestConsoleThrottles(t *testing.T) {
	c, out, clock := newTestConsole(time.Second)

	drawFrame(c, 1)
	clock.t = clock.t.Add(500 * time.Millisecond)
	drawFrame(c, 2)
	clock.t = clock.t.Add(500 * time.Millisecond)
	drawFrame(c, 3)

	if c.Rendered() != 2 {
		t.Fatalf("Rendered() = %d, want 2", c.Rendered())
	}
	got := ansi.ReplaceAllString(out.String(), "")
	if strings.Contains(got, "fps       2") {
		t.Errorf("throttled frame was written:\n%s", got)
	}
	if !strings.Contains(got, "fps       3") {
		t.Errorf("frame after the interval was not written:\n%s", got)
	}
}

func TestConsoleIgnoresEmptyAndStrayWidgets(t *testing.T) {
	c, out, _ := newTestConsole(0)

	c.Text("outside of a frame")
	c.BeginRender()
	c.EndRender()
	c.EndRender()

	if c.Rendered() != 0 || out.Len() != 0 {
		t.Errorf("Rendered() = %d, output %q, want nothing", c.Rendered(), out.String())
	}
}

func TestNopOverlay(t *testing.T) {
	var o Overlay = Nop{}
	drawFrame(o, 60)
}
