package tui

// Option configures the fill runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithPageSize sets the page size passed to select prompts.
func WithPageSize(size int) Option {
	return func(r *Runner) {
		if size > 0 {
			r.pageSize = size
		}
	}
}
