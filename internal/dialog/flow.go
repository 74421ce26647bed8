package dialog

import "fmt"

// Step is one state of a flow: what to ask, where the answer goes, how to
// check it, and where to go next. An empty Next marks the terminal step.
// Retry is the re-prompt sent on validation failure; empty means repeat
// Prompt.
type Step struct {
	Tag      StepTag
	Prompt   string
	Retry    string
	Field    string
	Validate ValidateFunc
	Next     StepTag
}

// RetryPrompt is what the user sees after rejected input.
func (s *Step) RetryPrompt() string {
	if s.Retry != "" {
		return s.Retry
	}
	return s.Prompt
}

// FlowDefinition is an immutable ordered sequence of steps, built once at
// startup. Step order is fixed: a step is only revisited by re-prompting on
// validation failure, never skipped.
type FlowDefinition struct {
	Tag   FlowTag
	first StepTag
	steps map[StepTag]*Step
}

// NewFlow builds a flow from steps in order. It panics on a malformed table
// (duplicate tags, dangling Next) because flows are static program data.
func NewFlow(tag FlowTag, steps ...Step) *FlowDefinition {
	if len(steps) == 0 {
		panic(fmt.Sprintf("flow %s: no steps", tag))
	}
	f := &FlowDefinition{Tag: tag, first: steps[0].Tag, steps: make(map[StepTag]*Step, len(steps))}
	for i := range steps {
		st := steps[i]
		if _, dup := f.steps[st.Tag]; dup {
			panic(fmt.Sprintf("flow %s: duplicate step %s", tag, st.Tag))
		}
		f.steps[st.Tag] = &st
	}
	for _, st := range f.steps {
		if st.Next == "" {
			continue
		}
		if _, ok := f.steps[st.Next]; !ok {
			panic(fmt.Sprintf("flow %s: step %s points to unknown step %s", tag, st.Tag, st.Next))
		}
	}
	return f
}

func (f *FlowDefinition) First() *Step { return f.steps[f.first] }

func (f *FlowDefinition) Step(tag StepTag) (*Step, bool) {
	st, ok := f.steps[tag]
	return st, ok
}

// Advance validates raw input against the session's current step. On success
// it stores the value in the draft and moves the session to the next step,
// returning (nextStep, true) or (nil, true) when the flow just completed.
// On validation failure it returns the error and touches nothing.
func (f *FlowDefinition) Advance(sess *Session, raw string) (*Step, error) {
	cur, ok := f.steps[sess.Step]
	if !ok {
		return nil, fmt.Errorf("flow %s: session at unknown step %s", f.Tag, sess.Step)
	}
	value := raw
	if cur.Validate != nil {
		v, err := cur.Validate(raw)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if cur.Field != "" {
		sess.SetField(cur.Field, value)
	}
	if cur.Next == "" {
		return nil, nil
	}
	sess.Step = cur.Next
	return f.steps[cur.Next], nil
}

// Registry holds all flow definitions, keyed by tag.
type Registry struct {
	flows map[FlowTag]*FlowDefinition
}

func NewRegistry(flows ...*FlowDefinition) *Registry {
	r := &Registry{flows: make(map[FlowTag]*FlowDefinition, len(flows))}
	for _, f := range flows {
		r.flows[f.Tag] = f
	}
	return r
}

func (r *Registry) Flow(tag FlowTag) (*FlowDefinition, bool) {
	f, ok := r.flows[tag]
	return f, ok
}
