package config

// Config é a configuração do servidor. Os valores vêm, em ordem de
// precedência crescente, dos defaults (envDefault), do arquivo YAML, das
// variáveis de ambiente e das flags da linha de comando.
type Config struct {
	Port       int    `koanf:"port" env:"FAKER_PORT" envDefault:"2000" validate:"min=1,max=65535"`
	MaxDelayMs int    `koanf:"delay" env:"FAKER_DELAY" envDefault:"0" validate:"min=0"`
	SchemaPath string `koanf:"schema" env:"FAKER_SCHEMA" envDefault:"backend.json" validate:"required"`
	CORSDomain string `koanf:"cors_domain" env:"FAKER_CORS_DOMAIN"`
	CORSPort   int    `koanf:"cors_port" env:"FAKER_CORS_PORT" validate:"min=0,max=65535"`
	Silent     bool   `koanf:"silent" env:"FAKER_SILENT"`
	// Seed fixa a fonte aleatória dos geradores. Zero usa uma semente aleatória.
	Seed uint64 `koanf:"seed" env:"FAKER_SEED"`

	Logging LoggingConf `koanf:"logging"`
	Metrics MetricsConf `koanf:"metrics"`
	Cache   CacheConf   `koanf:"cache"`
}

type LoggingConf struct {
	Enabled bool   `koanf:"enabled" env:"FAKER_LOG_ENABLED" envDefault:"true"`
	Level   string `koanf:"level" env:"FAKER_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format  string `koanf:"format" env:"FAKER_LOG_FORMAT" envDefault:"console" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `koanf:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `koanf:"enabled" env:"DD_ENABLED"`
	Addr      string `koanf:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `koanf:"namespace" env:"DD_NAMESPACE" envDefault:"backend_faker"`
	// Env vira a tag global "env:<valor>" quando informado.
	Env string `koanf:"env" env:"DD_ENV"`
}

type CacheConf struct {
	Backend string    `koanf:"backend" env:"FAKER_CACHE" envDefault:"memory" validate:"oneof=memory redis"`
	Redis   RedisConf `koanf:"redis"`
}

type RedisConf struct {
	Addr     string `koanf:"addr" env:"FAKER_REDIS_ADDR"`
	Password string `koanf:"password" env:"FAKER_REDIS_PASSWORD"`
	DB       int    `koanf:"db" env:"FAKER_REDIS_DB" validate:"min=0"`
	Prefix   string `koanf:"prefix" env:"FAKER_REDIS_PREFIX" envDefault:"backend-faker:"`
}
