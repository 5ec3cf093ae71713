package buildsys

import (
	"context"
)

// Run builds a single concrete target. Errors are passed through unchanged.
func (r *Registry) Run(ctx context.Context, env *Env, target Target, opts Options) error {
	env.Printer.Task("Building '%s'...", target)
	step, err := r.Lookup(target)
	if err != nil {
		return err
	}

	err = step(ctx, env, opts)
	if err != nil {
		return err
	}

	env.Printer.Success("Done building '%s'.", target)
	return nil
}

// Build runs every target opts.Target expands to, one after the other, and stops at the
// first failure.
func (r *Registry) Build(ctx context.Context, env *Env, opts Options) error {
	for _, target := range r.Expand(opts.Target) {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.Run(ctx, env, target, opts)
		if err != nil {
			return err
		}
	}

	return nil
}
