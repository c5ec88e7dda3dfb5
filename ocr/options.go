package ocr

// Options contains per-request options for a single extraction attempt
type Options struct {
	// Prompt is the instruction sent alongside the image
	Prompt string

	// Temperature is the sampling temperature for this attempt
	Temperature float64
}

// Option is a function type to modify Options
type Option func(*Options)

// WithPrompt overrides the transcription prompt
func WithPrompt(prompt string) Option {
	return func(o *Options) {
		o.Prompt = prompt
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = t
	}
}

// DefaultOptions returns the default per-request options
func DefaultOptions() *Options {
	return &Options{
		Prompt:      defaultPrompt,
		Temperature: defaultTemperatureSchedule[0],
	}
}
