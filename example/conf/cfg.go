package conf

import (
	"log"

	"github.com/BurntSushi/toml"
)

type Cfg struct {
	DBConfig *DatabaseCfg `toml:"database"`
}

type DatabaseCfg struct {
	Type     string `toml:"type"`
	Addr     string `toml:"addr"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbName"`
}

func (df *DatabaseCfg) GetType() string {
	return df.Type
}
func (df *DatabaseCfg) GetAddr() string {
	return df.Addr
}
func (df *DatabaseCfg) GetDB() string {
	return df.DBName
}
func (df *DatabaseCfg) GetUser() string {
	return df.User
}
func (df *DatabaseCfg) GetPassword() string {
	return df.Password
}

// Load reads the toml config at path. Missing or broken config falls back to
// the in-memory engine so the example stays runnable without a database.
func Load(path string) *Cfg {
	var config Cfg
	if _, err := toml.DecodeFile(path, &config); err != nil {
		log.Printf("Load toml config err=%+v", err)
	}
	if config.DBConfig == nil {
		config.DBConfig = &DatabaseCfg{Type: "memory", DBName: "example"}
	}
	return &config
}
