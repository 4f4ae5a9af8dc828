package config

const databaseURLKey = "DATABASE_URL"

type PostgresConfig struct {
	url string
}

func (p *PostgresConfig) loadEnv() {
	p.url = getEnv(databaseURLKey, "")
}

func (p *PostgresConfig) URL() string {
	return p.url
}
