package core

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetLogOutputIsShared(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(os.Stderr) })

	LogInfo("frame %d", 7)
	LogDebug("hidden at info level")

	out := buf.String()
	if !strings.Contains(out, "frame 7") {
		t.Errorf("log output = %q, want it to contain %q", out, "frame 7")
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("log output = %q, debug line should be filtered", out)
	}
}

func TestSetLogLevel(t *testing.T) {
	before := GetLogLevel()
	t.Cleanup(func() { getLogger().SetLevel(before) })

	tests := []struct {
		level   string
		want    LogLevel
		wantErr bool
	}{
		{level: "debug", want: DebugLevel},
		{level: "warn", want: WarnLevel},
		{level: "loud", want: WarnLevel, wantErr: true},
		{level: "", want: WarnLevel, wantErr: true},
	}
	for _, tt := range tests {
		err := SetLogLevel(tt.level)
		if (err != nil) != tt.wantErr {
			t.Fatalf("SetLogLevel(%q) error = %v, wantErr %t", tt.level, err, tt.wantErr)
		}
		if got := GetLogLevel(); got != tt.want {
			t.Errorf("after SetLogLevel(%q) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}
