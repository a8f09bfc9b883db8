package config

// DBConfig contains PostgreSQL configuration for the render ledger.
type DBConfig struct {
	// Enabled turns the render ledger on. Disabled, finished jobs are not
	// recorded and the history endpoint is not registered.
	Enabled  bool   `env:"ENABLED"  envDefault:"false"`
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"scenesmith"`
	Password string `env:"PASSWORD" envDefault:"scenesmith"`
	Name     string `env:"NAME"     envDefault:"scenesmith"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"MIGRATE" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the synthesis cache.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
