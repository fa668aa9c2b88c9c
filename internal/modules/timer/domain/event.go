package domain

// Event is an input to Machine.Apply.
type Event interface {
	eventName() string
}

type (
	Start     struct{}
	Pause     struct{}
	Tick      struct{}
	Interrupt struct{}
	Stop      struct{}
	Reset     struct{}
	Adjust    struct{ Delta int }
)

// SelectCategory does not check Name against the configured list; the engine does.
type SelectCategory struct{ Name string }

func (Start) eventName() string          { return "start" }
func (Pause) eventName() string          { return "pause" }
func (Tick) eventName() string           { return "tick" }
func (Interrupt) eventName() string      { return "interrupt" }
func (Stop) eventName() string           { return "stop" }
func (Reset) eventName() string          { return "reset" }
func (Adjust) eventName() string         { return "adjust" }
func (SelectCategory) eventName() string { return "select_category" }

// EventName is used for logging.
func EventName(e Event) string {
	if e == nil {
		return "nil"
	}
	return e.eventName()
}
