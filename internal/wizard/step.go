package wizard

// Step is one screen of the booking wizard. Transitions are strictly +-1;
// the submit action is only reachable at StepConfirm.
type Step int

const (
	StepClinic Step = iota + 1
	StepSchedule
	StepServices
	StepPets
	StepConfirm
)

const (
	minStep = StepClinic
	maxStep = StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepClinic:
		return "clinic"
	case StepSchedule:
		return "schedule"
	case StepServices:
		return "services"
	case StepPets:
		return "pets"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}
