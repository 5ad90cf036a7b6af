package ws

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/drag"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/FakeOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/FakeOS/backend/internal/shared/utils"
)

var (
	// ErrMalformed covers input that is not a JSON object with a type
	ErrMalformed = errors.New("malformed message")
	// ErrUnknownType is returned for a type the desktop does not handle
	ErrUnknownType = errors.New("unknown message type")
)

// Decode turns one WebSocket frame into a desktop event and returns the
// message type alongside it. A ping decodes to a nil event.
func Decode(data []byte, validator *utils.JSONSizeValidator) (string, desktop.Event, error) {
	if err := validator.ValidateJSON(data); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var msg types.WSMessage
	if err := sonic.Unmarshal(data, &msg); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if msg.Type == "" {
		return "", nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}

	ev, err := toEvent(msg)
	if err != nil {
		return "", nil, err
	}
	return msg.Type, ev, nil
}

func toEvent(msg types.WSMessage) (desktop.Event, error) {
	switch msg.Type {
	case types.MsgPing:
		return nil, nil
	case types.MsgRestart:
		return desktop.Restart{}, nil
	case types.MsgStartMenuToggle:
		return desktop.StartMenuToggle{}, nil
	case types.MsgEmptyTrash:
		return desktop.EmptyTrash{}, nil
	case types.MsgTerminalHistoryUp:
		return desktop.TerminalHistoryUp{}, nil

	case types.MsgTerminalSubmit:
		if err := utils.ValidateTerminalLine(msg.Line); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return desktop.TerminalSubmit{Line: msg.Line}, nil

	case types.MsgPointerMove:
		return desktop.PointerMove{Pointer: drag.PointerID(msg.Pointer), X: msg.X, Y: msg.Y}, nil
	case types.MsgPointerUp:
		return desktop.PointerUp{Pointer: drag.PointerID(msg.Pointer)}, nil
	case types.MsgPointerDown:
		// The press may land on the bare desktop
		var name window.Name
		if msg.Window != "" {
			n, err := window.Parse(msg.Window)
			if err != nil {
				return nil, err
			}
			name = n
		}
		return desktop.PointerDown{
			Pointer:  drag.PointerID(msg.Pointer),
			Button:   drag.Button(msg.Button),
			Window:   name,
			TitleBar: msg.TitleBar,
			X:        msg.X,
			Y:        msg.Y,
		}, nil

	case types.MsgDeleteFile, types.MsgRestoreFile, types.MsgPurgeFile:
		if msg.ID == nil {
			return nil, fmt.Errorf("%w: %s needs an id", ErrMalformed, msg.Type)
		}
		switch msg.Type {
		case types.MsgDeleteFile:
			return desktop.DeleteFile{ID: *msg.ID}, nil
		case types.MsgRestoreFile:
			return desktop.RestoreFile{ID: *msg.ID}, nil
		default:
			return desktop.PurgeFile{ID: *msg.ID}, nil
		}
	}

	name, err := window.Parse(msg.Window)
	if err != nil {
		if !windowMessage(msg.Type) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
		}
		return nil, err
	}

	switch msg.Type {
	case types.MsgIconActivate:
		return desktop.IconActivate{Window: name}, nil
	case types.MsgTaskbarClick:
		return desktop.TaskbarClick{Window: name}, nil
	case types.MsgStartMenuLaunch:
		return desktop.StartMenuLaunch{Window: name}, nil
	case types.MsgTitleMinimize:
		return desktop.TitleMinimize{Window: name}, nil
	case types.MsgTitleMaximize:
		return desktop.TitleMaximize{Window: name}, nil
	case types.MsgTitleClose:
		return desktop.TitleClose{Window: name}, nil
	case types.MsgWindowPress:
		return desktop.WindowPress{Window: name}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
}

func windowMessage(t string) bool {
	switch t {
	case types.MsgIconActivate, types.MsgTaskbarClick, types.MsgStartMenuLaunch,
		types.MsgTitleMinimize, types.MsgTitleMaximize, types.MsgTitleClose,
		types.MsgWindowPress:
		return true
	}
	return false
}
