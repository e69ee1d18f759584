package speech

// Device is where the speech model currently lives.
type Device int

const (
	DeviceAccelerator Device = iota
	DeviceCPU
)

func (d Device) String() string {
	if d == DeviceCPU {
		return "cpu"
	}
	return "accelerator"
}

// DeviceFromName maps a worker-reported device name ("cuda", "mps", "cpu")
// onto the two-state model placement.
func DeviceFromName(name string) Device {
	if name == "cpu" {
		return DeviceCPU
	}
	return DeviceAccelerator
}

// State tracks model placement for a run. The only transition is
// accelerator → cpu; once downgraded it never reverses.
type State struct {
	device Device
}

func NewState(d Device) *State {
	return &State{device: d}
}

func (s *State) Device() Device {
	return s.device
}

// OnAccelerator reports whether the model is still on the accelerator.
func (s *State) OnAccelerator() bool {
	return s.device == DeviceAccelerator
}

// Downgrade moves the state to CPU. It returns true only on the first
// transition; calling it again is a no-op.
func (s *State) Downgrade() bool {
	if s.device == DeviceCPU {
		return false
	}
	s.device = DeviceCPU
	return true
}
