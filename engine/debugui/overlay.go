// Package debugui brackets the per-state debug widgets drawn each frame.
package debugui

// Overlay collects widgets between BeginRender and EndRender.
type Overlay interface {
	BeginRender()
	EndRender()

	Header(title string)
	Text(format string, args ...interface{})
	Value(label string, value interface{})
	Separator()
}

// Nop discards every widget.
type Nop struct{}

func (Nop) BeginRender() {}
func (Nop) EndRender() {}
func (Nop) Header(string) {}
func (Nop) Text(string, ...interface{}) {}
func (Nop) Value(string, interface{}) {}
func (Nop) Separator() {}
