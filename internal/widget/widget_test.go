package widget

import (
	"testing"

	"github.com/muurk/touchgui/internal/display"
)

func mustClickable(t *testing.T, rec *display.Recorder, d ClickableDescriptor, flags Flags) *Clickable {
	t.Helper()
	reg := NewRegistry()
	h, err := reg.AddClickable(d)
	if err != nil {
		t.Fatalf("AddClickable() error = %v", err)
	}
	c, err := NewClickable(rec, reg, h, flags)
	if err != nil {
		t.Fatalf("NewClickable() error = %v", err)
	}
	return c
}

func button(name string) ClickableDescriptor {
	return ClickableDescriptor{
		Descriptor: Descriptor{
			Name:     name,
			Bounds:   Rect{X: 10, Y: 20, W: 100, H: 40},
			FG:       display.White,
			BG:       display.Navy,
			FontSize: 2,
			Label:    "OK",
		},
		FGClicked: display.Yellow,
		BGOn:      display.DarkGreen,
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 40}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},
		{109, 59, true},
		{110, 20, false},
		{10, 60, false},
		{9, 30, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClickInsideThenOutside(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	calls := 0
	d := button("ok")
	d.Action = func(Widget, any) { calls++ }
	c := mustClickable(t, rec, d, 0)

	if !c.Click(50, 30) {
		t.Fatal("Click inside returned false")
	}
	if !c.IsPressed() {
		t.Fatal("not pressed after click inside")
	}
	n := len(rec.Ops())
	if !c.Click(51, 31) {
		t.Error("repeated click inside returned false")
	}
	if len(rec.Ops()) != n {
		t.Error("repeated click inside redrew the widget")
	}

	if c.Click(200, 200) {
		t.Error("Click outside while pressed returned true")
	}
	if c.IsPressed() {
		t.Error("still pressed after click outside")
	}
	if calls != 1 {
		t.Errorf("action ran %d times, want 1", calls)
	}
	if c.Release() {
		t.Error("Release after drag-off returned true")
	}
	if calls != 1 {
		t.Errorf("action ran %d times after stale release", calls)
	}
}

func TestReleaseWhileIdle(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	c := mustClickable(t, rec, button("ok"), 0)
	if c.Release() {
		t.Error("Release while idle returned true")
	}
	if len(rec.Ops()) != 0 {
		t.Error("Release while idle drew something")
	}
	if c.Click(500, 500) {
		t.Error("Click outside while idle returned true")
	}
}

func TestReleaseRunsActionOnce(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	var gotWidget Widget
	var gotArg any
	calls := 0
	d := button("ok")
	d.ActionArg = 7
	d.Action = func(w Widget, arg any) {
		calls++
		gotWidget, gotArg = w, arg
	}
	c := mustClickable(t, rec, d, 0)

	c.Click(20, 30)
	if !c.Release() {
		t.Fatal("Release while pressed returned false")
	}
	if c.Release() {
		t.Error("second Release returned true")
	}
	if calls != 1 {
		t.Errorf("action ran %d times", calls)
	}
	if gotWidget != Widget(c) || gotArg != 7 || c.ActionArg() != 7 {
		t.Errorf("action got (%v, %v)", gotWidget, gotArg)
	}
}

func TestOnOffToggleParity(t *testing.T) {
	for _, initial := range []bool{false, true} {
		for n := 0; n < 5; n++ {
			rec := display.NewRecorder(320, 240)
			flags := OnOff
			if initial {
				flags |= On
			}
			c := mustClickable(t, rec, button("toggle"), flags)
			for i := 0; i < n; i++ {
				c.Click(50, 30)
				c.Release()
			}
			if want := initial != (n%2 == 1); c.IsOn() != want {
				t.Errorf("initial %v after %d cycles: IsOn() = %v, want %v", initial, n, c.IsOn(), want)
			}
		}
	}
}

func TestSetOnOff(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	plain := mustClickable(t, rec, button("plain"), 0)
	plain.SetOnOff(true)
	if plain.IsOn() {
		t.Error("plain widget turned on")
	}

	toggle := mustClickable(t, rec, button("toggle"), OnOff)
	toggle.SetOnOff(true)
	if !toggle.IsOn() {
		t.Error("SetOnOff(true) ignored")
	}
	toggle.SetOnOff(false)
	if toggle.IsOn() {
		t.Error("SetOnOff(false) ignored")
	}

	toggle.SetFlags(OnOff | On | ChangeColorOn)
	if toggle.Flags() != OnOff|On|ChangeColorOn {
		t.Errorf("Flags() = %s", toggle.Flags())
	}
	if got := toggle.Flags().String(); got != "onoff|on|color-on" {
		t.Errorf("Flags().String() = %q", got)
	}
}

func TestOnTextRequiresOnOff(t *testing.T) {
	reg := NewRegistry()
	d := button("pump")
	d.OnText = "ON"
	h, err := reg.AddClickable(d)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewClickable(display.NewRecorder(1, 1), reg, h, 0); err == nil {
		t.Error("on-text accepted on a plain widget")
	}
	if _, err := NewClickable(display.NewRecorder(1, 1), reg, h, OnOff); err != nil {
		t.Errorf("on/off widget rejected: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	h, err := reg.AddLabel(Descriptor{Name: "title", Bounds: Rect{W: 10, H: 10}, Label: "Hi"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.AddLabel(Descriptor{Name: "title", Bounds: Rect{W: 10, H: 10}}); err == nil {
		t.Error("duplicate name accepted")
	}
	if _, err := reg.AddLabel(Descriptor{Name: "flat", Bounds: Rect{W: 10}}); err == nil {
		t.Error("degenerate bounds accepted")
	}
	long := make([]byte, MaxLabelLen+1)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := reg.AddLabel(Descriptor{Name: "long", Bounds: Rect{W: 1, H: 1}, Label: string(long)}); err == nil {
		t.Error("over-long label accepted")
	}

	d, ok := reg.Label(h)
	if !ok || d.Label != "Hi" {
		t.Fatalf("Label(%d) = %+v, %v", h, d, ok)
	}
	d.Label = "changed"
	again, _ := reg.Label(h)
	if again.Label != "Hi" {
		t.Error("lookup returned shared descriptor")
	}
	if reg.Kind(h) != KindLabel || reg.Kind(99) != KindInvalid {
		t.Error("Kind() wrong")
	}
	if _, ok := reg.Clickable(h); ok {
		t.Error("label handle yielded a clickable descriptor")
	}
	if got, ok := reg.Lookup("title"); !ok || got != h {
		t.Error("Lookup(title) failed")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d", reg.Len())
	}
}

func TestLabelRenderCentersText(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	reg := NewRegistry()
	h, _ := reg.AddLabel(Descriptor{
		Bounds:   Rect{X: 10, Y: 20, W: 100, H: 40},
		FG:       display.White,
		BG:       display.Navy,
		FontSize: 2,
		Label:    "OK",
	})
	l, err := NewLabel(rec, reg, h)
	if err != nil {
		t.Fatal(err)
	}
	l.Render(false, false)
	if l.Click(20, 30) || l.Release() {
		t.Error("label reacted to touch")
	}

	ops := rec.Ops()
	if len(ops) != 2 {
		t.Fatalf("ops = %v", ops)
	}
	if f := ops[0]; f.Kind != display.OpFill || f.X0 != 10 || f.Y0 != 20 || f.X1 != 109 || f.Y1 != 59 || f.Color != display.Navy {
		t.Errorf("fill = %v", f)
	}
	// width of "OK" at size 2 is 22, height 14
	if s := ops[1]; s.X0 != 49 || s.Y0 != 33 || s.Text != "OK" || s.Color != display.White {
		t.Errorf("string = %v", s)
	}
}

func TestTransparentSkipsFill(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	d := button("ghost")
	d.Transparent = true
	c := mustClickable(t, rec, d, 0)
	c.Render(false, false)
	for _, op := range rec.Ops() {
		if op.Kind == display.OpFill {
			t.Errorf("transparent widget filled: %v", op)
		}
	}
}

func TestPressedColor(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	c := mustClickable(t, rec, button("ok"), 0)
	c.Click(20, 30)
	strs := rec.Ops()
	if last := strs[len(strs)-1]; last.Color != display.Yellow {
		t.Errorf("pressed text color = %s, want YELLOW", last.Color)
	}
	rec.Reset()
	c.Release()
	strs = rec.Ops()
	if last := strs[len(strs)-1]; last.Color != display.White {
		t.Errorf("released text color = %s, want WHITE", last.Color)
	}
}

func TestChangeColorOn(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	c := mustClickable(t, rec, button("heat"), OnOff|On|ChangeColorOn)
	c.Render(false, false)
	ops := rec.Ops()
	if ops[0].Color != display.DarkGreen {
		t.Errorf("on background = %s, want DARKGREEN", ops[0].Color)
	}
	if ops[1].Color != display.Yellow {
		t.Errorf("on foreground = %s, want YELLOW", ops[1].Color)
	}
}

func TestVariableTextPlacement(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	d := button("pump")
	d.Label = "Pump:"
	d.FontSize = 1
	d.VarText = "OFF"
	d.OnText = "ON"
	d.VarOffset = 6
	c := mustClickable(t, rec, d, OnOff)
	c.Render(false, false)

	strs := rec.Strings()
	if len(strs) != 2 || strs[0] != "Pump:" || strs[1] != "OFF" {
		t.Fatalf("strings = %v", strs)
	}
	ops := rec.Ops()
	labelX := ops[1].X0
	// "Pump:" is 29px wide at size 1
	if labelX != 10+(100-29)/2 {
		t.Errorf("label x = %d", labelX)
	}
	if varX := ops[2].X0; varX != labelX+display.TextWidth(6, 1) {
		t.Errorf("variable text x = %d, want %d", varX, labelX+35)
	}
}

func TestOnOffReleaseErasesOldText(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	d := button("pump")
	d.Label = "Pump:"
	d.VarText = "OFF"
	d.OnText = "ON"
	d.VarOffset = 6
	c := mustClickable(t, rec, d, OnOff)

	c.Click(20, 30)
	rec.Reset()
	c.Release()

	var texts []display.Op
	for _, op := range rec.Ops() {
		if op.Kind == display.OpString && op.Text != "Pump:" {
			texts = append(texts, op)
		}
	}
	if len(texts) != 2 {
		t.Fatalf("variable text ops = %v", texts)
	}
	if texts[0].Text != "OFF" || texts[0].Color != display.Navy {
		t.Errorf("erase = %v, want OFF in background", texts[0])
	}
	if texts[1].Text != "ON" || texts[1].Color != display.White {
		t.Errorf("draw = %v, want ON in foreground", texts[1])
	}
}

func TestTextSourceFollowsOnState(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	buf := NewTextBuffer("21.5")
	d := button("temp")
	d.Label = ""
	d.VarBuffer = buf
	d.OnText = "HOLD"
	c := mustClickable(t, rec, d, OnOff|VarTextInMemory)

	c.Render(false, false)
	if got := rec.Strings(); len(got) != 1 || got[0] != "21.5" {
		t.Errorf("off text = %v, want buffer text", got)
	}

	rec.Reset()
	c.SetOnOff(true)
	c.Render(false, false)
	if got := rec.Strings(); len(got) != 1 || got[0] != "HOLD" {
		t.Errorf("on text = %v, want on-text", got)
	}
}

func TestVarTextOnlyRedraw(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	buf := NewTextBuffer("42")
	d := button("count")
	d.Label = "N="
	d.FontSize = 1
	d.VarBuffer = buf
	d.VarOffset = 3
	c := mustClickable(t, rec, d, VarTextInMemory)

	buf.SetText("7")
	c.Render(false, true)
	ops := rec.Ops()
	if len(ops) != 2 {
		t.Fatalf("ops = %v", ops)
	}
	if ops[0].Kind != display.OpFill || ops[0].X1 != 109 {
		t.Errorf("value region fill = %v", ops[0])
	}
	if ops[1].Text != "7" || ops[1].Transparent {
		t.Errorf("value redraw = %v, want opaque 7", ops[1])
	}
}

func TestCenteredVarTextWithoutLabel(t *testing.T) {
	rec := display.NewRecorder(320, 240)
	d := button("status")
	d.Label = ""
	d.FontSize = 1
	d.VarText = "IDLE"
	d.VarOffset = 1
	c := mustClickable(t, rec, d, 0)
	c.Render(false, false)

	ops := rec.Ops()
	want := 10 + (100-display.TextWidth(4, 1))/2 + display.TextWidth(1, 1)
	if got := ops[len(ops)-1].X0; got != want {
		t.Errorf("x = %d, want %d", got, want)
	}
}
