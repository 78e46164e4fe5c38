package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	ListenAddr string   `koanf:"listenaddr"`
	Frontend   Frontend `koanf:"frontend"`
	Auth       Auth     `koanf:"auth"`
	AI         AI       `koanf:"ai"`
	Reminder   Reminder `koanf:"reminder"`
	Database   Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Auth struct {
	TokenSecret string `koanf:"tokensecret"`
	// TokenTTL is the validity period of issued bearer tokens.
	TokenTTL time.Duration `koanf:"tokenttl"`
}

type AI struct {
	APIKey string `koanf:"apikey"`
	Model  string `koanf:"model"`
}

type Reminder struct {
	Enabled bool `koanf:"enabled"`
	// LeadTime is how long before a lesson start the reminder fires.
	LeadTime time.Duration `koanf:"leadtime"`
}

type Database struct {
	// Driver selects the storage engine: "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	// Path is the SQLite database file, used only when Driver is "sqlite".
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		ListenAddr: ":8282",
		Frontend: Frontend{
			Enabled: true,
		},
		Auth: Auth{
			TokenTTL: 7 * 24 * time.Hour,
		},
		AI: AI{
			Model: "gemini-1.5-flash",
		},
		Reminder: Reminder{
			Enabled:  true,
			LeadTime: 30 * time.Minute,
		},
		Database: Database{
			Driver: "sqlite",
			Path:   "tutormaster.db",
			Host:   "localhost",
			Port:   5432,
			User:   "tutormaster",
			Pass:   "",
			Name:   "tutormaster",
			Schema: "tutormaster",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "TUTOR_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "TUTOR_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
