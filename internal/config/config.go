package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DatabaseMode has the following constants: DatabaseModePostgres, DatabaseModeRedis, DatabaseModeMemory
type DatabaseMode string

const (
	DatabaseModePostgres DatabaseMode = "postgres"
	DatabaseModeRedis    DatabaseMode = "redis"
	DatabaseModeMemory   DatabaseMode = "memory"
)

// HashAlgorithm has the following constants: HashAlgorithmArgon2, HashAlgorithmBcrypt
type HashAlgorithm string

const (
	HashAlgorithmArgon2 HashAlgorithm = "argon2"
	HashAlgorithmBcrypt HashAlgorithm = "bcrypt"
)

const envPrefix = "STAFFLINE_"

type ServerConfig struct {
	ExternalUrl    string
	Host           string
	Port           int
	AllowedOrigins []string
	MountPath      string
	ShutdownGrace  time.Duration
}

type PostgresConfig struct {
	Database string
	Host     string
	Port     int
	Username string
	Password string
	SslMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database int
}

type DatabaseConfig struct {
	Mode     DatabaseMode
	Postgres PostgresConfig
	Redis    RedisConfig
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type HashingConfig struct {
	Algorithm HashAlgorithm
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mail     MailConfig
	Hashing  HashingConfig
}

var environment = "PRODUCTION"
var C Config

func IsProduction() bool {
	return environment == "PRODUCTION"
}

func SetEnvironment(env string) {
	environment = strings.ToUpper(env)
}

// Init loads the configuration from (in increasing precedence) the optional
// .env file, the yaml file at configFilePath and STAFFLINE_* environment variables.
func Init(configFilePath string) {
	loadDotEnv()

	k := koanf.New(".")

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			log.Fatalf("error loading config from file: %v", err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")

			if strings.Contains(v, " ") {
				return k, strings.Split(v, " ")
			}

			return k, v
		},
	}), nil)
	if err != nil {
		log.Fatalf("error loading config from env: %v", err)
	}

	C = Config{}
	err = k.Unmarshal("", &C)
	if err != nil {
		log.Fatalf("error unmarshalling config: %v", err)
	}

	setDefaultsOrPanic()
}

func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("error loading .env file: %v", err)
	}
}

func setDefaultsOrPanic() {
	setServerDefaultsOrPanic()
	setDatabaseDefaultsOrPanic()
	setMailDefaultsOrPanic()
	setHashingDefaultsOrPanic()
}

func setServerDefaultsOrPanic() {
	if C.Server.Host == "" {
		if IsProduction() {
			panic("missing server hostname in config")
		}

		C.Server.Host = "localhost"
	}

	if C.Server.Port == 0 {
		C.Server.Port = 8080
	}

	if C.Server.ExternalUrl == "" {
		C.Server.ExternalUrl = fmt.Sprintf("http://%s:%d", C.Server.Host, C.Server.Port)
	}

	if len(C.Server.AllowedOrigins) == 0 {
		if IsProduction() {
			panic("missing allowed origins")
		}

		C.Server.AllowedOrigins = []string{"*", "http://localhost:5173"}
	}

	if C.Server.MountPath == "" {
		C.Server.MountPath = "/employees"
	}

	if !strings.HasPrefix(C.Server.MountPath, "/") {
		C.Server.MountPath = "/" + C.Server.MountPath
	}
	C.Server.MountPath = strings.TrimSuffix(C.Server.MountPath, "/")

	if C.Server.ShutdownGrace == 0 {
		C.Server.ShutdownGrace = 10 * time.Second
	}
}

func setDatabaseDefaultsOrPanic() {
	switch C.Database.Mode {
	case DatabaseModePostgres:
		setPostgresDefaultsOrPanic()

	case DatabaseModeRedis:
		setRedisDefaultsOrPanic()

	case DatabaseModeMemory:
		if IsProduction() {
			panic("memory database mode is not supported in production")
		}

	default:
		panic("database mode missing or not supported")
	}
}

func setPostgresDefaultsOrPanic() {
	if C.Database.Postgres.Database == "" {
		C.Database.Postgres.Database = "staffline"
	}

	if C.Database.Postgres.Username == "" {
		panic("missing postgres username")
	}

	if C.Database.Postgres.Port == 0 {
		C.Database.Postgres.Port = 5432
	}

	if C.Database.Postgres.Host == "" {
		panic("missing postgres host")
	}

	if C.Database.Postgres.SslMode == "" {
		C.Database.Postgres.SslMode = "require"
	}

	if C.Database.Postgres.Password == "" {
		panic("missing postgres password")
	}
}

func setRedisDefaultsOrPanic() {
	if C.Database.Redis.Host == "" {
		if IsProduction() {
			panic("missing redis host")
		}

		C.Database.Redis.Host = "localhost"
	}

	if C.Database.Redis.Port == 0 {
		C.Database.Redis.Port = 6379
	}
}

func setMailDefaultsOrPanic() {
	// EMAIL and EMAIL_PASSWORD are still honoured for older deployments
	if C.Mail.Username == "" {
		C.Mail.Username = os.Getenv("EMAIL")
	}

	if C.Mail.Password == "" {
		C.Mail.Password = os.Getenv("EMAIL_PASSWORD")
	}

	if C.Mail.Host == "" {
		C.Mail.Host = "smtp.gmail.com"
	}

	if C.Mail.Port == 0 {
		C.Mail.Port = 587
	}

	if C.Mail.From == "" {
		C.Mail.From = C.Mail.Username
	}

	if C.Mail.From == "" {
		panic("missing mail sender address")
	}

	if C.Mail.Timeout == 0 {
		C.Mail.Timeout = 30 * time.Second
	}
}

func setHashingDefaultsOrPanic() {
	switch C.Hashing.Algorithm {
	case "":
		C.Hashing.Algorithm = HashAlgorithmArgon2

	case HashAlgorithmArgon2, HashAlgorithmBcrypt:
		// nothing to do

	default:
		panic("hashing algorithm not supported")
	}
}
