package out

import (
	"fmt"
	"sync"

	"focustrack/internal/modules/monitor/domain"
	"focustrack/internal/modules/monitor/dto"
)

// ChannelNotifier fans notices out to subscribers without blocking the monitor.
type ChannelNotifier struct {
	mu   sync.Mutex
	subs map[int]chan dto.NoticeOutput
	next int
}

func NewChannelNotifier() *ChannelNotifier {
	return &ChannelNotifier{subs: map[int]chan dto.NoticeOutput{}}
}

func (n *ChannelNotifier) Subscribe(buffer int) (<-chan dto.NoticeOutput, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan dto.NoticeOutput, buffer)
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs, id)
			close(ch)
		})
	}
}

func (n *ChannelNotifier) Notify(notice domain.Notice) {
	out := toOutput(notice)
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- out:
		default:
		}
	}
}

func toOutput(notice domain.Notice) dto.NoticeOutput {
	switch notice.Kind {
	case domain.ResumeReminder:
		return dto.NoticeOutput{
			Kind:         dto.NoticeResumeReminder,
			Distractions: notice.Distractions,
			Message:      "Welcome back. The timer is paused; resume to continue.",
		}
	default:
		return dto.NoticeOutput{
			Kind:         dto.NoticeDistracted,
			Distractions: notice.Distractions,
			Message:      fmt.Sprintf("Distraction detected. Timer paused (distractions: %d).", notice.Distractions),
		}
	}
}
