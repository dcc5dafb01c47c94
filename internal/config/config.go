package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
	"time"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		BotName string `yaml:"bot_name" env:"TELEGRAM_BOT_NAME" env-default:"FoodScoutBot"`
		Enabled bool   `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"false"`
	} `yaml:"telegram"`
	Yelp struct {
		ApiKey  string `yaml:"api_key" env:"YELP_API_KEY" env-default:""`
		BaseURL string `yaml:"base_url" env:"YELP_BASE_URL" env-default:"https://api.yelp.com/v3"`
		Limit   int    `yaml:"limit" env-default:"10"`
	} `yaml:"yelp"`
	Dialog struct {
		SessionTimeout time.Duration `yaml:"session_timeout" env-default:"10m"`
		SweepInterval  time.Duration `yaml:"sweep_interval" env-default:"1m"`
	} `yaml:"dialog"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:""`
	} `yaml:"mongo"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env:"PORT" env-default:"3001"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
