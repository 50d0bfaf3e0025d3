package filetransfer

import (
	"time"

	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/limits"
)

// DownloadExtension is appended to the hash to name an in-progress download.
const DownloadExtension = ".download"

// DefaultStallTimeout is the default time after which an unanswered chunk
// request is sent again.
const DefaultStallTimeout = 30 * time.Second

// Options contains the configuration of the file transfer service.
type Options struct {
	// OwnLocation is the identity of the local node. Data requests coming
	// from it are never served from the local tables.
	OwnLocation id.LocationID
	// IncomingDirectory receives downloads.
	IncomingDirectory string
	// TunnelEncryption is "chacha20-poly1305" or "chacha20-sha256".
	TunnelEncryption string
	// MaxChunkSize is the largest data request that is answered.
	MaxChunkSize uint32
	// BlockSize is the size of the data requests sent while downloading.
	BlockSize uint32
	// Strategy selects the order in which chunks are downloaded.
	Strategy Strategy
	// QueueSize is the capacity of the command queue.
	QueueSize int
	// TickInterval is the scheduling period of the manager.
	TickInterval time.Duration
	// RequestTimeout is how long a chunk request may stay unanswered.
	RequestTimeout time.Duration
	// MaxPendingChunks bounds the chunks requested at once per download.
	MaxPendingChunks int
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		IncomingDirectory: "incoming",
		TunnelEncryption:  "chacha20-poly1305",
		MaxChunkSize:      limits.MaxChunkSize,
		BlockSize:         limits.DefaultBlockSize,
		Strategy:          StrategyLinear,
		QueueSize:         4096,
		TickInterval:      time.Second,
		RequestTimeout:    DefaultStallTimeout,
		MaxPendingChunks:  4,
	}
}
