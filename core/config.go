package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Address         string
		ShutdownTimeout time.Duration
		JWTExpiration   time.Duration
	}

	LMSConfig struct {
		BaseURL     string
		CurationURL string
		Timeout     time.Duration
		RetryCount  int
	}

	SessionsConfig struct {
		CourseDuration time.Duration
		QuizDuration   time.Duration
		SweepSchedule  string
		FinishedTTL    time.Duration
	}

	Config struct {
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		AppName          string
		SecretKey        string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string
		Certificates     bool

		Server   ServerConfig
		LMS      LMSConfig
		Sessions SessionsConfig
	}
)

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Academia")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("certificates", false)

	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)

	v.SetDefault("lmsBaseURL", "http://localhost:8000")
	v.SetDefault("lmsCurationURL", "http://127.0.0.1:8000")
	v.SetDefault("lmsTimeout", 10*time.Second)
	v.SetDefault("lmsRetryCount", 0)

	v.SetDefault("courseSessionDuration", 15*time.Minute)
	v.SetDefault("quizSessionDuration", 10*time.Minute)
	v.SetDefault("sessionSweepSchedule", "@every 1m")
	v.SetDefault("finishedSessionTTL", 30*time.Minute)
}

// NewConfig loads the configuration from the environment.
// ENV selects the env prefix (DEV by default) and the optional config/.env.<env> file.
func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return fromViper(v, env)
}

func fromViper(v *viper.Viper, env string) *Config {
	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		from = &mail.Address{Address: v.GetString("defaultFromEmail")}
	}
	if from.Name == "" {
		from.Name = v.GetString("appName")
	}

	return &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		DefaultFromEmail: *from,
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Certificates:     v.GetBool("certificates"),
		Server: ServerConfig{
			Address:         v.GetString("serverAddress"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
			JWTExpiration:   v.GetDuration("jwtExpirationDelta"),
		},
		LMS: LMSConfig{
			BaseURL:     strings.TrimRight(v.GetString("lmsBaseURL"), "/"),
			CurationURL: strings.TrimRight(v.GetString("lmsCurationURL"), "/"),
			Timeout:     v.GetDuration("lmsTimeout"),
			RetryCount:  v.GetInt("lmsRetryCount"),
		},
		Sessions: SessionsConfig{
			CourseDuration: v.GetDuration("courseSessionDuration"),
			QuizDuration:   v.GetDuration("quizSessionDuration"),
			SweepSchedule:  v.GetString("sessionSweepSchedule"),
			FinishedTTL:    v.GetDuration("finishedSessionTTL"),
		},
	}
}

// NewTestConfig returns the default configuration in test mode, without touching the environment.
func NewTestConfig() *Config {
	v := viper.New()
	setDefaults(v)
	v.Set("debug", false)
	v.Set("testMode", true)
	v.Set("secretKey", "secret")
	return fromViper(v, "TEST")
}
