package di

import (
	"github.com/kbukum/inject/logger"
	"github.com/kbukum/inject/observability"
)

type options struct {
	catalog     *Catalog
	log         *logger.Logger
	tracing     bool
	metrics     *observability.InjectMetrics
	validate    bool
	annotations AnnotationSource
}

// Option configures an Injector.
type Option func(*options)

// WithCatalog sets the catalog used to construct class and provider types.
func WithCatalog(c *Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithLogger sets the injector logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracing opens a span around every public resolution.
func WithTracing() Option {
	return func(o *options) { o.tracing = true }
}

// WithMetrics records resolution metrics on m.
func WithMetrics(m *observability.InjectMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithInstanceValidation validates struct instances carrying validate tags
// after their members are injected.
func WithInstanceValidation() Option {
	return func(o *options) { o.validate = true }
}

// WithAnnotationSource replaces the source of injectable field declarations.
func WithAnnotationSource(s AnnotationSource) Option {
	return func(o *options) { o.annotations = s }
}

func (o *options) applyDefaults() {
	if o.log == nil {
		o.log = logger.Get("di")
	}
	if o.annotations == nil {
		o.annotations = DefaultAnnotationSource()
	}
}
