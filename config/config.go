package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultOverdueThreshold = 90 * time.Minute
	defaultNeighborWindow   = 3
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	// Queue configuration for the dispatch queue engine
	Queue *QueueConfig `json:"queue" yaml:"queue"`

	// PubSub configuration for queue event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QueueConfig defines tunables for the dispatch queue
type QueueConfig struct {
	// OverdueThreshold is how long a professional may stay en route before
	// the admin queue listing raises an alert
	OverdueThreshold time.Duration `json:"overdueThreshold" yaml:"overdueThreshold"`

	// NeighborWindow is how many waiting professionals ahead and behind are
	// shown in the position view
	NeighborWindow int `json:"neighborWindow" yaml:"neighborWindow"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// QueueOrDefault returns the queue configuration, filling in defaults for
// missing values.
func (cfg *Config) QueueOrDefault() QueueConfig {
	out := QueueConfig{
		OverdueThreshold: defaultOverdueThreshold,
		NeighborWindow:   defaultNeighborWindow,
	}
	if cfg.Queue == nil {
		return out
	}
	if cfg.Queue.OverdueThreshold > 0 {
		out.OverdueThreshold = cfg.Queue.OverdueThreshold
	}
	if cfg.Queue.NeighborWindow > 0 {
		out.NeighborWindow = cfg.Queue.NeighborWindow
	}

	return out
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	cfg.Postgres.Replicas = replicasFromEnv()

	return cfg, nil
}

// LoadWithEnv reads <currEnv>.yaml through koanf and layers environment
// variables on top. Env var names are mapped onto the YAML key tree so
// POSTGRES_SSLMODE overrides postgres.sslMode rather than creating a
// parallel postgres.sslmode key.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	configFile, err := resolveConfigFile(currEnv, configPath...)
	if err != nil {
		return nil, err
	}

	koanfInstance := koanf.New(".")
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	yamlKeys := koanfInstance.Raw()
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, yamlKeys), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := new(T)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// env overrides arrive lowercased
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// resolveConfigFile returns the first <currEnv>.yaml found in the working
// directory or any of the given paths relative to it.
func resolveConfigFile(currEnv string, configPath ...string) (string, error) {
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", currEnv)
}

// canonicalizeEnvKey converts ENV_VAR_NAME into a dotted key path, aligning
// each segment with the casing already present in the YAML tree.
func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	canonical := make([]string, 0, 4)
	subtree := existing

	for _, segment := range strings.Split(strings.ToLower(rawKey), "_") {
		if segment == "" {
			continue
		}

		matched, child, ok := findExistingSegment(subtree, segment)
		if !ok {
			canonical = append(canonical, segment)
			subtree = nil

			continue
		}

		canonical = append(canonical, matched)
		subtree = child
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(subtree map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(subtree) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range subtree {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// replicasFromEnv builds the read-replica list from indexed environment
// variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...),
// stopping at the first index without a host and port.
func replicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
