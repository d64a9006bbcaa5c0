package bt

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/rcai/ai"
	"github.com/milk9111/rcai/common"
)

// RequestStateTask asks the controller for a state. When the change is
// InProgress it keeps running until the controller broadcasts the matching
// StateChangeFinished, or fails if that change ends any other way.
type RequestStateTask struct {
	State ai.State

	waiting     bool
	result      Status
	unsubscribe func()
}

func NewRequestStateTask(s ai.State) *RequestStateTask {
	return &RequestStateTask{State: s}
}

func (t *RequestStateTask) Tick(a Agent) Status {
	c := controllerOf(a)
	if c == nil {
		common.Logger(common.CategoryAI).WithField("task", "request_state").Warn("agent has no AI controller")
		return Failed
	}

	if t.waiting {
		if t.result == InProgress {
			return InProgress
		}
		t.stop()
		return t.result
	}

	t.result = InProgress
	t.unsubscribe = c.Subscribe(t.onStateChange)
	res := FromResult(c.RequestState(t.State))
	if res != InProgress {
		t.stop()
		return res
	}
	t.waiting = true
	// the change may have settled while the request was being made
	if t.result != InProgress {
		t.stop()
		return t.result
	}
	return InProgress
}

func (t *RequestStateTask) Abort(Agent) {
	t.stop()
}

func (t *RequestStateTask) onStateChange(change ai.StateChange) {
	if change.To != t.State {
		return
	}
	if change.Message() == ai.MessageStateChangeFinished {
		t.result = Succeeded
		return
	}
	t.result = Failed
	common.Logger(common.CategoryAI).WithFields(logrus.Fields{
		"controller": change.Controller,
		"to":         change.To,
		"outcome":    change.Outcome,
	}).Debug("requested state change did not finish")
}

func (t *RequestStateTask) stop() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	t.waiting = false
}

func controllerOf(a Agent) *ai.Controller {
	if a == nil {
		return nil
	}
	return a.Controller()
}
