package config

const (
	defaultServerPort = 8000

	defaultMongoMaxPoolSize = 100

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":                           "0.0.0.0",
		"server.port":                           defaultServerPort,
		"server.read_timeout":                   "5s",
		"server.write_timeout":                  "10s",
		"server.idle_timeout":                   "120s",
		"server.cors.allowed_origins":           []string{},
		"server.cors.max_age":                   "5m",
		"server.rate_limit.requests_per_second": 0,
		"server.rate_limit.burst":               0,

		"log.level":  "info",
		"log.format": "json",

		"mongo.uri":               "mongodb://localhost:27017",
		"mongo.database":          "todos",
		"mongo.collection":        "todos",
		"mongo.connect_timeout":   "10s",
		"mongo.operation_timeout": "5s",
		"mongo.max_pool_size":     defaultMongoMaxPoolSize,

		"store.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"store.circuit_breaker.timeout":         "30s",
		"store.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"metrics.enabled": false,
		"metrics.path":    "/metrics",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "todo-mongo-service",
	}
}
