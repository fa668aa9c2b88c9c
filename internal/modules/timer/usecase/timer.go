package usecase

import (
	"focustrack/internal/modules/timer/domain"
	"focustrack/internal/modules/timer/dto"
	timerin "focustrack/internal/modules/timer/port/in"
	"focustrack/internal/modules/timer/service"
)

type Interactor struct {
	engine *service.Engine
}

func NewInteractor(engine *service.Engine) timerin.Usecase {
	return &Interactor{engine: engine}
}

func (i *Interactor) Snapshot() dto.SnapshotOutput {
	return toSnapshot(i.engine.Snapshot())
}

func (i *Interactor) Start() error {
	out, _ := i.engine.Apply(domain.Start{})
	return out.Err
}

func (i *Interactor) Pause() error {
	out, _ := i.engine.Apply(domain.Pause{})
	return out.Err
}

func (i *Interactor) Stop() (*dto.SummaryOutput, error) {
	out, summary := i.engine.Apply(domain.Stop{})
	if out.Err != nil {
		return nil, out.Err
	}
	return toSummary(summary), nil
}

func (i *Interactor) Reset() error {
	out, _ := i.engine.Apply(domain.Reset{})
	return out.Err
}

func (i *Interactor) AdjustDuration(delta int) error {
	out, _ := i.engine.Apply(domain.Adjust{Delta: delta})
	return out.Err
}

func (i *Interactor) SelectCategory(name string) error {
	_, err := i.engine.SelectCategory(name)
	return err
}

func (i *Interactor) Categories() []string {
	return i.engine.Categories()
}

func (i *Interactor) Interrupt() bool {
	return i.engine.Interrupt()
}

// Subscribe relays engine notices as dto events until cancel is called or the
// engine closes.
func (i *Interactor) Subscribe(buffer int) (<-chan dto.EventOutput, func()) {
	notices, cancel := i.engine.Subscribe(buffer)
	events := make(chan dto.EventOutput, max(buffer, 1))
	go func() {
		defer close(events)
		for n := range notices {
			select {
			case events <- toEvent(n):
			default:
			}
		}
	}()
	return events, cancel
}

func toEvent(n domain.Notice) dto.EventOutput {
	kind := dto.EventChanged
	switch n.Kind {
	case domain.Finished:
		kind = dto.EventFinished
	case domain.Saved:
		kind = dto.EventSaved
	case domain.PersistFailed:
		kind = dto.EventPersistFailed
	case domain.Advisory:
		kind = dto.EventAdvisory
	}
	return dto.EventOutput{
		Kind:     kind,
		Snapshot: toSnapshot(n.Machine),
		Summary:  toSummary(n.Summary),
		RecordID: n.RecordID,
		Err:      n.Err,
	}
}

func toSnapshot(m domain.Machine) dto.SnapshotOutput {
	return dto.SnapshotOutput{
		State:             m.State.String(),
		PauseReason:       m.Reason.String(),
		ConfiguredMinutes: m.ConfiguredMinutes,
		RemainingMinutes:  m.RemainingMinutes,
		RemainingSeconds:  m.RemainingSeconds,
		Distractions:      m.Distractions,
		Category:          m.Category,
	}
}

func toSummary(s *domain.Summary) *dto.SummaryOutput {
	if s == nil {
		return nil
	}
	return &dto.SummaryOutput{
		Category:        s.Category,
		DurationSeconds: s.Duration,
		Minutes:         s.Minutes(),
		Distractions:    s.Distractions,
		PerfectFocus:    s.PerfectFocus(),
		Completed:       s.Completed,
		Date:            s.Date,
	}
}
