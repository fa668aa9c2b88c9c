package dto

const (
	SignalActive     = "active"
	SignalInactive   = "inactive"
	SignalBackground = "background"

	NoticeDistracted     = "distracted"
	NoticeResumeReminder = "resume_reminder"
)

type SignalInput struct {
	Signal string
	Source string
}

type ObserveOutput struct {
	Transition string
	Counted    bool
}

type NoticeOutput struct {
	Kind         string
	Distractions int
	Message      string
}
