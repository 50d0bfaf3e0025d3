// Package config loads the node configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/filetransfer"
	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/limits"
	"github.com/opd-ai/rsnode/noise"
	"github.com/opd-ai/rsnode/transport"
)

// Config is the process configuration of a node.
type Config struct {
	LogLevel      string `env:"RS_LOG_LEVEL,default=info" validate:"oneof=panic fatal error warn warning info debug trace"`
	ListenAddress string `env:"RS_LISTEN_ADDRESS,default=0.0.0.0:7812" validate:"required,hostname_port"`

	// Location is the hex node identity. A random one is generated when empty.
	Location string `env:"RS_LOCATION" validate:"omitempty,hexadecimal,len=32"`
	// NoisePrivateKey enables sealed peer links when set.
	NoisePrivateKey string `env:"RS_NOISE_PRIVATE_KEY" validate:"omitempty,hexadecimal,len=64"`
	// Peers lists "location@host:port[/publickey]" entries separated by ';'.
	Peers []string `env:"RS_PEERS,separator=;"`

	IncomingDirectory string `env:"RS_INCOMING_DIR,default=incoming" validate:"required"`
	ShareDirectory    string `env:"RS_SHARE_DIR"`
	// DatabaseDirectory holds the download database. Empty keeps it in memory.
	DatabaseDirectory string `env:"RS_DB_DIR"`

	TunnelEncryption string        `env:"RS_TUNNEL_ENCRYPTION,default=chacha20-poly1305" validate:"oneof=chacha20-poly1305 chacha20-sha256"`
	ChunkStrategy    string        `env:"RS_CHUNK_STRATEGY,default=linear" validate:"oneof=linear random"`
	MaxChunkSize     uint32        `env:"RS_MAX_CHUNK_SIZE,default=1048576" validate:"min=1,max=1048576"`
	BlockSize        uint32        `env:"RS_BLOCK_SIZE,default=16384" validate:"min=1024"`
	QueueSize        int           `env:"RS_QUEUE_SIZE,default=4096" validate:"min=1"`
	TickInterval     time.Duration `env:"RS_TICK_INTERVAL,default=1s" validate:"min=10ms"`
	RequestTimeout   time.Duration `env:"RS_REQUEST_TIMEOUT,default=30s" validate:"min=1s"`
	MaxPendingChunks int           `env:"RS_MAX_PENDING_CHUNKS,default=4" validate:"min=1,max=64"`
}

var validate = validator.New()

// MaxBlockSize is the largest data request block whose reply, sealed on the
// link and with room for tunnel encryption, fits a single datagram.
const MaxBlockSize = transport.MaxPacketSize - transport.HeaderSize - noise.Overhead -
	limits.DataItemOverhead - limits.EncryptionOverhead

// Load reads the optional dotenv files (".env" when none is given), then the
// environment, and validates the result. Variables already present in the
// environment take precedence over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading dotenv: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.BlockSize > MaxBlockSize {
		return nil, fmt.Errorf("invalid config: RS_BLOCK_SIZE %d exceeds %d: %w",
			cfg.BlockSize, MaxBlockSize, limits.ErrMessageTooLarge)
	}
	return &cfg, nil
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// LocationID returns the configured node identity, or a fresh one.
func (c *Config) LocationID() (id.LocationID, error) {
	if c.Location == "" {
		return id.NewLocationID(), nil
	}
	return id.ParseLocationID(c.Location)
}

// KeyPair returns the static noise key pair, or nil when sealing is disabled.
func (c *Config) KeyPair() (*noise.KeyPair, error) {
	if c.NoisePrivateKey == "" {
		return nil, nil
	}
	private, err := noise.ParseKey(c.NoisePrivateKey)
	if err != nil {
		return nil, err
	}
	return noise.KeyPairFromPrivate(private)
}

// Options converts the configuration into file transfer options.
func (c *Config) Options(location id.LocationID) (*filetransfer.Options, error) {
	strategy, err := filetransfer.ParseStrategy(c.ChunkStrategy)
	if err != nil {
		return nil, err
	}

	options := filetransfer.NewOptions()
	options.OwnLocation = location
	options.IncomingDirectory = c.IncomingDirectory
	options.TunnelEncryption = c.TunnelEncryption
	options.MaxChunkSize = c.MaxChunkSize
	options.BlockSize = c.BlockSize
	options.Strategy = strategy
	options.QueueSize = c.QueueSize
	options.TickInterval = c.TickInterval
	options.RequestTimeout = c.RequestTimeout
	options.MaxPendingChunks = c.MaxPendingChunks
	return options, nil
}
