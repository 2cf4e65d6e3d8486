package screen

import (
	"strings"
	"testing"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/numedit"
	"github.com/muurk/touchgui/internal/persist"
	"github.com/muurk/touchgui/internal/store"
	"github.com/muurk/touchgui/internal/touch"
	"github.com/muurk/touchgui/internal/widget"
)

type fixture struct {
	fb     *display.Framebuffer
	mem    *store.Memory
	script *touch.Script
	env    numedit.Env
}

func newFixture() *fixture {
	f := &fixture{
		fb:     display.NewFramebuffer(320, 480),
		mem:    store.NewMemory(),
		script: touch.NewScript(),
	}
	f.env = numedit.Env{
		Display:  f.fb,
		Sensor:   f.script,
		Debounce: touch.NewDebouncer(touch.DefaultDebounce, f.script),
		Bridge:   persist.NewBridge(f.mem),
	}
	return f
}

func TestBuildDefault(t *testing.T) {
	f := newFixture()
	scr, err := NewBuilder(Default(), f.env).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var names []string
	for _, w := range scr.Widgets {
		names = append(names, w.Name())
	}
	if got := strings.Join(names, ","); got != "title,setpoint,count,pump,reset" {
		t.Errorf("widgets = %s", got)
	}
	if len(scr.Buttons) != 4 {
		t.Errorf("got %d buttons, want 4 (edit-only included)", len(scr.Buttons))
	}
	if scr.Registry.Len() != 7 {
		t.Errorf("registry holds %d descriptors, want 7", scr.Registry.Len())
	}
	if len(scr.Restored) != 0 {
		t.Errorf("Restored = %v from an empty store", scr.Restored)
	}

	if got := scr.Editors["setpoint"].Text(); got != "21.5" {
		t.Errorf("setpoint mirror = %q, want 21.5", got)
	}
	if v, ok := scr.Value("count"); !ok || !v.Equal(fixedpoint.Int(10)) {
		t.Errorf("count = %v, %v", v, ok)
	}
	if _, ok := scr.Value("pump"); ok {
		t.Error("toggle reported a linked value")
	}
	if !scr.Buttons["pump"].Flags().Has(widget.OnOff | widget.ChangeColorOn) {
		t.Errorf("pump flags = %s", scr.Buttons["pump"].Flags())
	}
}

func TestBuildRestoresStoredValues(t *testing.T) {
	f := newFixture()
	if err := f.mem.Put(4, fixedpoint.Int(1234).Cell()); err != nil {
		t.Fatal(err)
	}

	scr, err := NewBuilder(Default(), f.env).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(scr.Restored) != 1 || scr.Restored[0] != "count" {
		t.Errorf("Restored = %v, want [count]", scr.Restored)
	}
	if got := scr.Editors["count"].Text(); got != "1234" {
		t.Errorf("count mirror = %q, want 1234", got)
	}

	scr, err = NewBuilder(Default(), f.env).SkipRestore().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := scr.Editors["count"].Text(); got != "10" {
		t.Errorf("count mirror with SkipRestore = %q, want 10", got)
	}
}

func TestBuildRunsActions(t *testing.T) {
	f := newFixture()
	var fired []string
	record := func(w widget.Widget, arg any) {
		s, _ := arg.(string)
		fired = append(fired, w.Name()+":"+s)
	}

	scr, err := NewBuilder(Default(), f.env).WithAction("log", record).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	pump := scr.Buttons["pump"]
	pump.Click(50, 220)
	pump.Release()
	if !pump.IsOn() {
		t.Error("pump not on after a tap")
	}

	reset := scr.Buttons["reset"]
	reset.Click(200, 220)
	reset.Release()

	if got := strings.Join(fired, ","); got != "pump:pump,reset:reset" {
		t.Errorf("fired = %s", got)
	}
}

func TestBuildEditPersists(t *testing.T) {
	f := newFixture()
	scr, err := NewBuilder(Default(), f.env).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	l := numedit.NewLayout(320, 480, fixedpoint.Field{IntDigits: 4})
	cx, cy := l.CellOrigin(3)
	var kx, ky int
	for i := 0; i < len(l.Keys); i++ {
		if l.Keys[i] == '7' {
			kx, ky = l.KeyOrigin(i)
		}
	}
	f.script.Frames = touch.Taps(
		[2]int{cx + 5, cy + 5},
		[2]int{kx + 25, ky + 31},
		[2]int{70, 450}, // ok
	)

	count := scr.Editors["count"]
	count.Click(50, 140)
	count.Release()

	res, err := count.LastSession()
	if err != nil {
		t.Fatalf("session error = %v", err)
	}
	if res.Outcome != numedit.OutcomeOK || !res.Changed {
		t.Fatalf("result = %+v", res)
	}
	if v, _ := scr.Value("count"); !v.Equal(fixedpoint.Int(17)) {
		t.Errorf("count = %v, want 17", v)
	}
	cell, ok, _ := f.mem.Get(4)
	if !ok || !fixedpoint.FromCell(cell, false).Equal(fixedpoint.Int(17)) {
		t.Errorf("stored cell = %v, %v", cell, ok)
	}
}

func TestBuildRejectsInvalid(t *testing.T) {
	f := newFixture()
	file := mutate("count", func(w *WidgetSpec) { w.Cancel = "nope" })
	_, err := NewBuilder(file, f.env).Build()
	if err == nil {
		t.Fatal("Build() of an invalid screen succeeded")
	}
	if !IsValidationError(err) {
		t.Errorf("IsValidationError(%v) = false", err)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error does not name the missing button: %v", err)
	}

	file = mutate("reset", func(w *WidgetSpec) { w.Action = "launch" })
	if _, err := NewBuilder(file, f.env).Build(); err == nil {
		t.Error("Build() accepted an unknown action")
	}
}

func TestNewEngineRendersScreen(t *testing.T) {
	f := newFixture()
	scr, err := NewBuilder(Default(), f.env).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	scr.NewEngine().RenderAll()
	if got := f.fb.At(5, 5); got != display.Navy {
		t.Errorf("title pixel = %s, want NAVY", got)
	}
	if got := f.fb.At(5, 300); got != display.Black {
		t.Errorf("background pixel = %s, want BLACK", got)
	}
}
