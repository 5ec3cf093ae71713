package buildsys

import (
	"context"

	"github.com/rotisserie/eris"
)

// Step builds a single target
type Step func(ctx context.Context, env *Env, opts Options) error

type registeredStep struct {
	run  Step
	desc string
}

// Registry maps targets to their steps and meta targets to the targets they consist of.
// It's fixed once NewRegistry returns.
type Registry struct {
	steps map[Target]registeredStep
	order map[Target][]Target
}

// NewRegistry returns the registry of available build steps. The Unity step is only
// registered if unity is true.
func NewRegistry(unity bool) *Registry {
	r := &Registry{
		steps: map[Target]registeredStep{
			TargetGamelib: {buildGamelib, "the C# game library (Indigo)"},
			TargetClean:   {buildClean, "removes the dist directory"},
		},
		order: map[Target][]Target{
			TargetAll: {TargetGamelib},
		},
	}

	if unity {
		r.steps[TargetUnity] = registeredStep{buildUnity, "the Unity player builds"}
		r.order[TargetAll] = []Target{TargetGamelib, TargetUnity}
	}

	return r
}

// Lookup returns the step for target. Meta targets and disabled targets have no step.
func (r *Registry) Lookup(target Target) (Step, error) {
	step, ok := r.steps[target]
	if !ok {
		return nil, newError(KindUnknownTarget, eris.Errorf("No build step registered for target '%s'", target))
	}
	return step.run, nil
}

// Expand returns the targets that have to run to build target, in order
func (r *Registry) Expand(target Target) []Target {
	if order, ok := r.order[target]; ok {
		result := make([]Target, len(order))
		copy(result, order)
		return result
	}
	return []Target{target}
}

// TargetInfo describes a target for listings
type TargetInfo struct {
	Name string
	Desc string
}

// Describe lists all targets in their declared order. Targets without a registered step
// are marked as unavailable.
func (r *Registry) Describe() []TargetInfo {
	result := make([]TargetInfo, 0, len(targetNames))
	for idx, name := range targetNames {
		target := Target(idx)
		info := TargetInfo{Name: name}

		if order, ok := r.order[target]; ok {
			info.Desc = "builds " + joinTargets(order) + " in this order"
		} else if step, ok := r.steps[target]; ok {
			info.Desc = step.desc
		} else {
			info.Desc = "(not available)"
		}

		result = append(result, info)
	}
	return result
}

func joinTargets(targets []Target) string {
	result := ""
	for idx, t := range targets {
		if idx > 0 {
			result += ", "
		}
		result += t.String()
	}
	return result
}
