package adb

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func newWatchTestModel(t *testing.T) WatchModel {
	t.Helper()
	fake := writeFake(t, `case "$1" in
devices)
  echo "List of devices attached"
  echo "emulator-5554          device product:sdk model:Pixel_6 device:emu transport_id:1"
  ;;
*)
  echo "13"
  ;;
esac`)
	r, err := NewRunner(Options{Path: fake})
	if err != nil {
		t.Fatal(err)
	}
	return NewWatchModel(r)
}

func sendWatchKey(m WatchModel, key string) (WatchModel, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated.(WatchModel), cmd
}

func TestWatchInitPolls(t *testing.T) {
	m := newWatchTestModel(t)

	poll := m.Init()
	if poll == nil {
		t.Fatal("Init should start a poll")
	}

	raw := poll()
	msg, ok := raw.(devicesMsg)
	if !ok {
		t.Fatalf("poll produced %T, want devicesMsg", raw)
	}
	if msg.err != nil {
		t.Fatalf("poll: %v", msg.err)
	}
	if len(msg.devices) != 1 || msg.devices[0].Serial != "emulator-5554" {
		t.Errorf("devices = %+v", msg.devices)
	}
}

func TestWatchResultSchedulesTickNotPoll(t *testing.T) {
	m := newWatchTestModel(t)

	result := devicesMsg{
		devices: []Device{{Serial: "emulator-5554", State: "device"}},
		at:      time.Now(),
	}
	updated, next := m.Update(result)
	m = updated.(WatchModel)

	if len(m.devices) != 1 {
		t.Errorf("devices not stored: %+v", m.devices)
	}
	if m.lastPoll.IsZero() {
		t.Error("lastPoll not recorded")
	}
	if next == nil {
		t.Fatal("a result must schedule the next tick")
	}

	// the next poll waits for the tick; the scheduled command delivers a
	// tick message rather than polling immediately
	start := time.Now()
	msg := next()
	if _, ok := msg.(watchTickMsg); !ok {
		t.Fatalf("scheduled command produced %T, want watchTickMsg", msg)
	}
	if elapsed := time.Since(start); elapsed < watchInterval {
		t.Errorf("tick fired after %s, want at least %s", elapsed, watchInterval)
	}
}

func TestWatchTickTriggersPoll(t *testing.T) {
	m := newWatchTestModel(t)

	updated, cmd := m.Update(watchTickMsg(time.Now()))
	m = updated.(WatchModel)
	if cmd == nil {
		t.Fatal("tick should start a poll")
	}
	if _, ok := cmd().(devicesMsg); !ok {
		t.Error("tick command should produce a devicesMsg")
	}
	_ = m
}

func TestWatchQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newWatchTestModel(t)
		updated, cmd := m.Update(tea.KeyMsg{Type: key})
		m = updated.(WatchModel)
		if !m.quitting {
			t.Errorf("%v should quit", key)
		}
		if cmd == nil {
			t.Fatalf("%v returned no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v should produce tea.QuitMsg", key)
		}
	}

	m := newWatchTestModel(t)
	m, cmd := sendWatchKey(m, "q")
	if !m.quitting {
		t.Error("'q' should quit")
	}
	if cmd == nil {
		t.Fatal("'q' returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("'q' should produce tea.QuitMsg")
	}
}

func TestWatchRefreshKeyPolls(t *testing.T) {
	m := newWatchTestModel(t)
	_, cmd := sendWatchKey(m, "r")
	if cmd == nil {
		t.Fatal("'r' should start a poll")
	}
	if _, ok := cmd().(devicesMsg); !ok {
		t.Error("'r' command should produce a devicesMsg")
	}
}

func TestWatchWindowSize(t *testing.T) {
	m := newWatchTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 132, Height: 43})
	m = updated.(WatchModel)
	if m.width != 132 || m.height != 43 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}

func TestWatchView(t *testing.T) {
	m := newWatchTestModel(t)

	view := m.View()
	if !strings.Contains(view, "(no devices)") {
		t.Errorf("empty view missing placeholder:\n%s", view)
	}

	m.devices = []Device{
		{Serial: "emulator-5554", State: "device", Model: "Pixel_6", Android: "13", SDK: "33"},
		{Serial: "deadbeef", State: "offline"},
	}
	m.lastPoll = time.Now()
	view = m.View()
	for _, want := range []string{"emulator-5554", "Pixel_6", "deadbeef", "offline", "SERIAL"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.listErr = errors.New("adb server not running")
	view = m.View()
	if !strings.Contains(view, "error:") {
		t.Errorf("error view missing message:\n%s", view)
	}

	m.quitting = true
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}
