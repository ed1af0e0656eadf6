package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/goliatone/go-regform/pkg/state"
)

const (
	eventValidate   = "validate"
	eventInvalidate = "invalidate"
	eventSubmit     = "submit"
)

var phaseEvents = fsm.Events{
	{Name: eventValidate, Src: []string{string(state.PhaseEditingInvalid)}, Dst: string(state.PhaseEditingValid)},
	{Name: eventInvalidate, Src: []string{string(state.PhaseEditingValid), string(state.PhaseSubmitted)}, Dst: string(state.PhaseEditingInvalid)},
	{Name: eventSubmit, Src: []string{string(state.PhaseEditingValid)}, Dst: string(state.PhaseSubmitted)},
}

// phaseTracker follows the phase derived from form state and reports moves
// the form lifecycle does not allow, such as editing_invalid -> submitted.
type phaseTracker struct {
	machine *fsm.FSM
}

func newPhaseTracker(initial state.Phase, log *slog.Logger) *phaseTracker {
	return &phaseTracker{
		machine: fsm.NewFSM(string(initial), phaseEvents, fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				log.DebugContext(ctx, "phase changed", "from", e.Src, "to", e.Dst)
			},
		}),
	}
}

func (p *phaseTracker) current() state.Phase {
	return state.Phase(p.machine.Current())
}

// follow moves the tracker to next. An illegal move still resyncs the tracker
// and returns ErrIllegalTransition.
func (p *phaseTracker) follow(ctx context.Context, next state.Phase) error {
	from := p.current()
	if from == next {
		return nil
	}

	var event string
	switch next {
	case state.PhaseEditingValid:
		event = eventValidate
	case state.PhaseEditingInvalid:
		event = eventInvalidate
	case state.PhaseSubmitted:
		event = eventSubmit
	}

	if event == "" || p.machine.Event(ctx, event) != nil {
		p.machine.SetState(string(next))
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, next)
	}
	return nil
}
