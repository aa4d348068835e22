package plugin

import (
	"github.com/alexisbeaulieu97/tabular/internal/logger"
	"github.com/alexisbeaulieu97/tabular/internal/telemetry"
)

// Engine orders, validates and composes plugin sets against one catalog and
// caches the composed pipelines. An Engine is safe for concurrent use; the
// pipelines it returns are shared read-only between callers.
type Engine struct {
	catalog *Catalog
	config  *Config
	cache   *Cache
	logger  *logger.Logger
	metrics *telemetry.Metrics
}

// NewEngine returns an engine for catalog. Nil config, logger or metrics
// fall back to defaults, a silent logger and disabled metrics.
func NewEngine(catalog *Catalog, config *Config, log *logger.Logger, metrics *telemetry.Metrics) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = telemetry.NewMetrics(telemetry.Config{})
	}

	return &Engine{
		catalog: catalog,
		config:  config,
		cache:   NewCache(config.CacheSize),
		logger:  log,
		metrics: metrics,
	}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Prepare orders plugins, validates them when enabled and returns the
// composed pipelines together with the ordered plugin list.
func (e *Engine) Prepare(plugins []*Plugin) (Pipelines, []*Plugin, error) {
	ordered := Order(plugins)

	key, cacheable := "", Cacheable(ordered)
	if cacheable {
		key = Fingerprint(ordered)
		if pipelines, ok := e.cache.Get(key); ok {
			e.metrics.RecordCacheLookup(true)
			e.logger.Debugf("reusing composed pipelines for %d plugins", len(ordered))
			return pipelines, ordered, nil
		}
		e.metrics.RecordCacheLookup(false)
	} else {
		e.logger.Debug("plugin set has unkeyed plugins; composing without cache")
	}

	if e.config.Validate {
		if err := Validate(ordered, e.catalog); err != nil {
			e.logger.Error(err, "plugin validation failed")
			return nil, nil, err
		}
	}

	pipelines := Compose(ordered, e.catalog)
	e.metrics.RecordComposition(e.config.Validate)
	if cacheable {
		e.cache.Put(key, pipelines)
	}

	if e.logger.DebugEnabled() {
		names := make([]string, len(ordered))
		for i, p := range ordered {
			names[i] = p.Name
		}
		e.logger.WithFields(map[string]any{"order": names}).Debugf("composed %d extension points", len(pipelines))
	}

	return pipelines, ordered, nil
}

// Purge clears cached pipelines.
func (e *Engine) Purge() {
	e.cache.Purge()
}
