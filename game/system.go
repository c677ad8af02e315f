package game

// System is one step of the frame. Systems can carry their own fields that
// persist between frames, like the gravity accumulator.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	State     *State
}
