package config

type Redis struct {
	// Address is optional, idempotency keys are kept in memory without it.
	Address        string `env:"REDIS_ADDRESS"`
	Username       string `env:"REDIS_USERNAME"`
	Password       string `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize       int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

func (r Redis) Enabled() bool {
	return r.Address != ""
}
