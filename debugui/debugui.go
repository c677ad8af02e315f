// Package debugui provides immediate-mode GUI windows for inspecting a
// running game using Dear ImGui. Windows are drawn by ImguiSystem, which
// runs as a regular game system.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every item to the end of the
// frame, after the game systems have run. It also refreshes Input.
type ImguiSystem struct {
	Items []ImguiItem
	Input ImguiInputState
}

// Add appends a window to the system.
func (i *ImguiSystem) Add(render func()) {
	i.Items = append(i.Items, ImguiItem{Render: render})
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *game.UpdateFrame) {
	io := imgui.CurrentIO()
	i.Input.WantCaptureMouse = io.WantCaptureMouse()
	i.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range i.Items {
		frame.Commands.Defer(item.Render)
	}
}
