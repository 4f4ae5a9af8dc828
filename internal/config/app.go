package config

const defaultPort = 5000

type AppConfig struct {
	ServiceName    string `yaml:"service-name"`
	ListenPort     int    `yaml:"port"`
	PrivilegedUser string `yaml:"privileged-user"`
}

func (a *AppConfig) loadEnv() {
	if a.ListenPort == 0 {
		a.ListenPort = defaultPort
	}
	a.ListenPort = getEnvAsInt("PORT", a.ListenPort)
}

func (a *AppConfig) Name() string {
	return a.ServiceName
}

func (a *AppConfig) Port() int {
	return a.ListenPort
}

// PrivilegedUserID is the one user whose ledger lives in the shared
// spreadsheet instead of the database.
func (a *AppConfig) PrivilegedUserID() string {
	return a.PrivilegedUser
}
