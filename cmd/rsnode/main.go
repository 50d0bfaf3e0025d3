// Command rsnode runs a file transfer node over a static UDP peer set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/rsnode/config"
	"github.com/opd-ai/rsnode/filetransfer"
	"github.com/opd-ai/rsnode/id"
	"github.com/opd-ai/rsnode/share"
	"github.com/opd-ai/rsnode/store"
	"github.com/opd-ai/rsnode/transport"
)

// downloadRequest is a "-download hash:size[:name]" flag value.
type downloadRequest struct {
	hash id.Sha1Sum
	size uint64
	name string
}

func parseDownload(value string) (downloadRequest, error) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 2 {
		return downloadRequest{}, fmt.Errorf("download %q: expected hash:size[:name]", value)
	}

	hash, err := id.ParseSha1Sum(parts[0])
	if err != nil {
		return downloadRequest{}, err
	}
	size, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return downloadRequest{}, fmt.Errorf("download %q: %w", value, err)
	}

	d := downloadRequest{hash: hash, size: size}
	if len(parts) == 3 {
		d.name = parts[2]
	}
	return d, nil
}

// logNotifier reports file transfer events to the log.
type logNotifier struct{}

func (logNotifier) FoundFile(requestID uint32, name string, size uint64, hash id.Sha1Sum) {
	logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"name":       name,
		"size":       size,
		"hash":       hash.String(),
	}).Info("Search result")
}

func (logNotifier) DownloadCompleted(hash id.Sha1Sum, path string) {
	logrus.WithFields(logrus.Fields{
		"hash": hash.String(),
		"path": path,
	}).Info("Download completed")
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var downloads []downloadRequest
	envFile := flag.String("env", "", "dotenv file to load (default .env)")
	statusInterval := flag.Duration("status", 30*time.Second, "download progress log interval, 0 disables it")
	flag.Func("download", "queue a download as hash:size[:name], may be repeated", func(value string) error {
		d, err := parseDownload(value)
		if err != nil {
			return err
		}
		downloads = append(downloads, d)
		return nil
	})
	flag.Parse()

	// 1. Configuration & logger
	cfg, err := config.Load(lo.Compact([]string{*envFile})...)
	if err != nil {
		return err
	}
	logrus.SetLevel(cfg.Level())

	location, err := cfg.LocationID()
	if err != nil {
		return fmt.Errorf("location: %w", err)
	}
	options, err := cfg.Options(location)
	if err != nil {
		return err
	}
	keys, err := cfg.KeyPair()
	if err != nil {
		return fmt.Errorf("noise key: %w", err)
	}
	if keys != nil {
		defer keys.Wipe()
	}
	peers, err := transport.ParsePeerTable(cfg.Peers)
	if err != nil {
		return err
	}

	// 2. Database
	db, err := store.Open(cfg.DatabaseDirectory)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logrus.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Shared files
	index := share.NewIndex()
	var shared []share.File
	if cfg.ShareDirectory != "" {
		if shared, err = index.Scan(cfg.ShareDirectory); err != nil {
			return err
		}
	}

	// 4. Peer link & service
	udp, err := transport.NewUDPTransport(cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}
	defer udp.Close()

	link := transport.NewItemLink(udp, location, peers, keys)
	service, err := filetransfer.NewService(options, link, index, store.NewDownloadRepository(db), logNotifier{})
	if err != nil {
		return err
	}
	link.SetHandler(service.HandleItem)

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- service.Run(ctx)
	}()

	for _, file := range shared {
		service.Share(file.Hash, file.Path)
	}
	sources := peers.Locations()
	for _, d := range downloads {
		service.Download(d.hash, d.size, d.name, sources...)
	}

	logrus.WithFields(logrus.Fields{
		"location": location.String(),
		"address":  udp.LocalAddr().String(),
		"shared":   len(shared),
		"queued":   len(downloads),
	}).Info("Node started")

	// 6. Wait for stop
	var ticker <-chan time.Time
	if *statusInterval > 0 {
		t := time.NewTicker(*statusInterval)
		defer t.Stop()
		ticker = t.C
	}
	for {
		select {
		case <-ticker:
			logStatus(ctx, service)
		case err := <-errChan:
			if errors.Is(err, context.Canceled) {
				logrus.Info("Program stopped cleanly")
				return nil
			}
			return err
		}
	}
}

func logStatus(ctx context.Context, service *filetransfer.Service) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	statuses, err := service.Downloads(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Download status unavailable")
		return
	}
	for _, st := range statuses {
		logrus.WithFields(logrus.Fields{
			"hash":     st.Hash.String(),
			"name":     st.Name,
			"progress": fmt.Sprintf("%d/%d", st.CompletedChunks, st.TotalChunks),
			"peers":    len(st.Peers),
		}).Info("Download progress")
	}
}
