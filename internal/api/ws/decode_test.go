package ws

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/drag"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/FakeOS/backend/internal/shared/utils"
)

func TestDecode(t *testing.T) {
	v := utils.DefaultJSONValidator()

	tests := []struct {
		name string
		in   string
		want desktop.Event
	}{
		{"restart", `{"type":"restart"}`, desktop.Restart{}},
		{"start menu", `{"type":"start_menu_toggle"}`, desktop.StartMenuToggle{}},
		{"icon", `{"type":"icon_activate","window":"terminal"}`, desktop.IconActivate{Window: window.Terminal}},
		{"taskbar", `{"type":"taskbar_click","window":"explorer"}`, desktop.TaskbarClick{Window: window.Explorer}},
		{"launch", `{"type":"start_menu_launch","window":"recycle"}`, desktop.StartMenuLaunch{Window: window.Recycle}},
		{"minimize", `{"type":"title_minimize","window":"terminal"}`, desktop.TitleMinimize{Window: window.Terminal}},
		{"maximize", `{"type":"title_maximize","window":"terminal"}`, desktop.TitleMaximize{Window: window.Terminal}},
		{"close", `{"type":"title_close","window":"terminal"}`, desktop.TitleClose{Window: window.Terminal}},
		{"press", `{"type":"window_press","window":"explorer"}`, desktop.WindowPress{Window: window.Explorer}},
		{
			"pointer down",
			`{"type":"pointer_down","pointer":3,"button":0,"window":"explorer","title_bar":true,"x":10,"y":20}`,
			desktop.PointerDown{Pointer: 3, Button: drag.ButtonPrimary, Window: window.Explorer, TitleBar: true, X: 10, Y: 20},
		},
		{
			"pointer down on desktop",
			`{"type":"pointer_down","pointer":1,"x":5,"y":6}`,
			desktop.PointerDown{Pointer: 1, X: 5, Y: 6},
		},
		{"pointer move", `{"type":"pointer_move","pointer":1,"x":7,"y":8}`, desktop.PointerMove{Pointer: 1, X: 7, Y: 8}},
		{"pointer up", `{"type":"pointer_up","pointer":1}`, desktop.PointerUp{Pointer: 1}},
		{"delete", `{"type":"delete_file","id":3}`, desktop.DeleteFile{ID: 3}},
		{"delete id zero", `{"type":"delete_file","id":0}`, desktop.DeleteFile{ID: 0}},
		{"restore", `{"type":"restore_file","id":4}`, desktop.RestoreFile{ID: 4}},
		{"purge", `{"type":"purge_file","id":5}`, desktop.PurgeFile{ID: 5}},
		{"empty trash", `{"type":"empty_trash"}`, desktop.EmptyTrash{}},
		{"submit", `{"type":"terminal_submit","line":"ls *.md"}`, desktop.TerminalSubmit{Line: "ls *.md"}},
		{"submit empty", `{"type":"terminal_submit"}`, desktop.TerminalSubmit{}},
		{"history", `{"type":"terminal_history_up"}`, desktop.TerminalHistoryUp{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ev, err := Decode([]byte(tt.in), v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestDecodePing(t *testing.T) {
	kind, ev, err := Decode([]byte(`{"type":"ping"}`), utils.DefaultJSONValidator())
	require.NoError(t, err)
	assert.Equal(t, "ping", kind)
	assert.Nil(t, ev)
}

func TestDecodeErrors(t *testing.T) {
	v := utils.NewJSONSizeValidator(128)

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"not json", `{"type":`, ErrMalformed},
		{"no type", `{"window":"terminal"}`, ErrMalformed},
		{"oversized", `{"type":"terminal_submit","line":"` + strings.Repeat("a", 200) + `"}`, ErrMalformed},
		{"unknown type", `{"type":"format_disk"}`, ErrUnknownType},
		{"unknown window", `{"type":"icon_activate","window":"calculator"}`, window.ErrUnknownWindow},
		{"missing window", `{"type":"title_close"}`, window.ErrUnknownWindow},
		{"pointer on unknown window", `{"type":"pointer_down","window":"nope"}`, window.ErrUnknownWindow},
		{"file without id", `{"type":"delete_file"}`, ErrMalformed},
		{"null byte", `{"type":"terminal_submit","line":"a\u0000b"}`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ev, err := Decode([]byte(tt.in), v)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, ev)
		})
	}
}
