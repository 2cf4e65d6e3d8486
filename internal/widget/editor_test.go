package widget

import (
	"errors"
	"testing"

	"github.com/muurk/touchgui/internal/display"
	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/numedit"
	"github.com/muurk/touchgui/internal/persist"
	"github.com/muurk/touchgui/internal/store"
	"github.com/muurk/touchgui/internal/touch"
)

type editorFixture struct {
	rec    *display.Recorder
	mem    *store.Memory
	value  int32
	calls  int
	gotArg any
	gotW   Widget
	editor *NumericEditor
	script *touch.Script
}

func newEditorFixture(t *testing.T, initial int32) *editorFixture {
	t.Helper()
	f := &editorFixture{
		rec:    display.NewRecorder(320, 480),
		mem:    store.NewMemory(),
		value:  initial,
		script: touch.NewScript(),
	}
	env := numedit.Env{
		Display:  f.rec,
		Sensor:   f.script,
		Debounce: touch.NewDebouncer(touch.DefaultDebounce, f.script),
		Bridge:   persist.NewBridge(f.mem),
	}

	reg := NewRegistry()
	okDesc := button("ok")
	okDesc.Bounds = Rect{X: 20, Y: 430, W: 100, H: 40}
	cancelDesc := button("cancel")
	cancelDesc.Label = "Cancel"
	cancelDesc.Bounds = Rect{X: 200, Y: 430, W: 100, H: 40}
	okH, _ := reg.AddClickable(okDesc)
	cancelH, _ := reg.AddClickable(cancelDesc)
	ok, _ := NewClickable(f.rec, reg, okH, 0)
	cancel, _ := NewClickable(f.rec, reg, cancelH, 0)

	edH, err := reg.AddEditor(EditDescriptor{
		ClickableDescriptor: ClickableDescriptor{
			Descriptor: Descriptor{
				Name:     "offset",
				Bounds:   Rect{X: 10, Y: 100, W: 200, H: 50},
				FG:       display.White,
				BG:       display.Navy,
				FontSize: 2,
				Label:    "Offset:",
			},
			VarBuffer: NewTextBuffer(""),
			VarOffset: 8,
			FGClicked: display.Yellow,
			Action: func(w Widget, arg any) {
				f.calls++
				f.gotW, f.gotArg = w, arg
			},
			ActionArg: "ignored",
		},
		Field:   fixedpoint.Field{IntDigits: 4, Signed: true},
		Link:    fixedpoint.IntLink(&f.value),
		Address: 32,
	})
	if err != nil {
		t.Fatalf("AddEditor() error = %v", err)
	}
	f.editor, err = NewNumericEditor(env, reg, edH, ok, cancel)
	if err != nil {
		t.Fatalf("NewNumericEditor() error = %v", err)
	}
	return f
}

func (f *editorFixture) play(points ...[2]int) {
	f.script.Frames = append(f.script.Frames, touch.Taps(points...)...)
}

func editLayout() numedit.Layout {
	return numedit.NewLayout(320, 480, fixedpoint.Field{IntDigits: 4, Signed: true})
}

func cell(l numedit.Layout, i int) [2]int {
	x, y := l.CellOrigin(i)
	return [2]int{x + 10, y + 10}
}

func key(l numedit.Layout, k byte) [2]int {
	for i := 0; i < len(l.Keys); i++ {
		if l.Keys[i] == k {
			x, y := l.KeyOrigin(i)
			return [2]int{x + 25, y + 31}
		}
	}
	panic("missing key")
}

var (
	okPoint     = [2]int{70, 450}
	cancelPoint = [2]int{250, 450}
)

func TestEditorMirrorsOnConstruction(t *testing.T) {
	f := newEditorFixture(t, -7)
	if got := f.editor.Text(); got != "-7" {
		t.Errorf("mirror = %q, want -7", got)
	}
	if !f.editor.Flags().Has(VarTextInMemory) {
		t.Error("editor variable text not in memory")
	}
}

func TestEditorAcceptsChange(t *testing.T) {
	f := newEditorFixture(t, -7)
	l := editLayout()
	f.play(
		cell(l, 2), key(l, '-'),
		cell(l, 3), key(l, '4'),
		cell(l, 4), key(l, '2'),
		okPoint,
	)

	if !f.editor.Click(50, 120) {
		t.Fatal("editor not pressed")
	}
	if !f.editor.Release() {
		t.Fatal("Release() returned false")
	}
	res, err := f.editor.LastSession()
	if err != nil {
		t.Fatalf("session error = %v", err)
	}
	if res.Outcome != numedit.OutcomeOK || !res.Changed {
		t.Errorf("result = %+v", res)
	}
	if f.value != -42 {
		t.Errorf("value = %d, want -42", f.value)
	}
	if f.editor.Text() != "-42" {
		t.Errorf("mirror = %q, want -42", f.editor.Text())
	}
	if _, ok, _ := f.mem.Get(32); !ok {
		t.Error("value not persisted")
	}
	if f.calls != 1 || f.gotArg != nil || f.gotW != Widget(f.editor) {
		t.Errorf("action calls=%d arg=%v widget=%v", f.calls, f.gotArg, f.gotW)
	}
	if f.editor.IsPressed() {
		t.Error("editor still pressed after the session")
	}
}

func TestEditorCancel(t *testing.T) {
	f := newEditorFixture(t, -7)
	l := editLayout()
	f.play(cell(l, 4), key(l, '9'), cancelPoint)

	f.editor.Click(50, 120)
	f.editor.Release()

	res, err := f.editor.LastSession()
	if err != nil || res.Outcome != numedit.OutcomeCancel {
		t.Fatalf("result = %+v, err = %v", res, err)
	}
	if f.value != -7 || f.editor.Text() != "-7" || f.mem.Puts() != 0 || f.calls != 0 {
		t.Errorf("cancel had effects: value %d mirror %q puts %d calls %d",
			f.value, f.editor.Text(), f.mem.Puts(), f.calls)
	}
}

func TestEditorUnchangedSkipsAction(t *testing.T) {
	f := newEditorFixture(t, 5)
	f.play(okPoint)

	f.editor.Click(50, 120)
	f.editor.Release()
	if res, _ := f.editor.LastSession(); res.Changed {
		t.Error("unchanged value reported as changed")
	}
	if f.calls != 0 || f.mem.Puts() != 0 {
		t.Errorf("calls %d puts %d", f.calls, f.mem.Puts())
	}
}

func TestEditorSensorClosed(t *testing.T) {
	f := newEditorFixture(t, 5)
	f.editor.Click(50, 120)
	f.editor.Release()
	if _, err := f.editor.LastSession(); !errors.Is(err, touch.ErrClosed) {
		t.Errorf("LastSession() error = %v, want ErrClosed", err)
	}
	if f.calls != 0 {
		t.Error("action ran after an aborted session")
	}
}

func TestRefreshDisplay(t *testing.T) {
	f := newEditorFixture(t, 1)
	f.value = 250
	if f.editor.Text() != "1" {
		t.Fatal("mirror changed before refresh")
	}
	f.editor.RefreshDisplay()
	if f.editor.Text() != "250" {
		t.Errorf("mirror = %q, want 250", f.editor.Text())
	}

	f.rec.Reset()
	f.editor.Render(false, true)
	if got := f.rec.Strings(); len(got) != 1 || got[0] != "250" {
		t.Errorf("value redraw = %v", got)
	}
}

func TestEditorDescriptorValidation(t *testing.T) {
	var v float32
	reg := NewRegistry()
	base := ClickableDescriptor{
		Descriptor: Descriptor{Name: "x", Bounds: Rect{W: 10, H: 10}},
		VarBuffer:  NewTextBuffer(""),
	}
	tests := []struct {
		name string
		desc EditDescriptor
	}{
		{"kind mismatch", EditDescriptor{ClickableDescriptor: base, Field: fixedpoint.Field{IntDigits: 3}, Link: fixedpoint.FloatLink(&v)}},
		{"no link", EditDescriptor{ClickableDescriptor: base, Field: fixedpoint.Field{IntDigits: 3}}},
		{"bad field", EditDescriptor{ClickableDescriptor: base, Link: fixedpoint.FloatLink(&v)}},
	}
	for _, tt := range tests {
		if _, err := reg.AddEditor(tt.desc); err == nil {
			t.Errorf("%s: AddEditor accepted invalid descriptor", tt.name)
		}
	}

	noMirror := EditDescriptor{
		ClickableDescriptor: ClickableDescriptor{Descriptor: base.Descriptor},
		Field:               fixedpoint.Field{IntDigits: 3, Decimals: 1},
		Link:                fixedpoint.FloatLink(&v),
	}
	if _, err := reg.AddEditor(noMirror); err == nil {
		t.Error("editor without mirror accepted")
	}
}
