package timeline

const (
	defaultWindowLimit  = 1000
	defaultRequestLimit = 5
	defaultInitialSize  = 20
)

// Config holds a Window's tunables, populated via Option functions
// passed to the constructor.
type Config struct {
	windowLimit  int
	requestLimit int
	initialSize  int
	logger       Logger
	hooks        Hooks
}

func defaultConfig() Config {
	return Config{
		windowLimit:  defaultWindowLimit,
		requestLimit: defaultRequestLimit,
		initialSize:  defaultInitialSize,
		logger:       nopLogger{},
	}
}

// Option configures a Window at construction time.
type Option func(*Config)

// WithWindowLimit sets the hard cap on materialised events
// (window_limit in spec.md §3). Values <= 0 are ignored.
func WithWindowLimit(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.windowLimit = n
		}
	}
}

// WithRequestLimit sets the bounded-retry ceiling for paginate
// (request_limit / DEFAULT_PAGINATE_LOOP_LIMIT in spec.md §4.3.4 and
// §9). Values <= 0 are ignored.
func WithRequestLimit(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.requestLimit = n
		}
	}
}

// WithInitialSize sets the default initial_size used by Load when the
// caller does not pass one explicitly.
func WithInitialSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.initialSize = n
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.logger = l }
}

// WithHooks installs observer hooks.
func WithHooks(h Hooks) Option {
	return func(c *Config) { c.hooks = h }
}
