package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/api/metrics"
	"github.com/nourtech/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deleteTimeout  = 30 * time.Second
)

// ImageCleaner deletes stored images in the background on a fixed set of
// workers, sharded by URL so repeated deletions of one object serialise.
type ImageCleaner struct {
	workers []chan string
	store   ports.ImageStore
	log     zerolog.Logger
}

// NewImageCleaner creates an ImageCleaner with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewImageCleaner(numWorkers int, store ports.ImageStore, log zerolog.Logger) *ImageCleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	c := &ImageCleaner{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range c.workers {
		c.workers[i] = make(chan string, channelBuffer)
	}
	return c
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (c *ImageCleaner) Start(ctx context.Context) {
	for i, ch := range c.workers {
		go c.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules the given URLs for deletion. It never blocks: when a
// worker's channel is full the URL is dropped and logged.
func (c *ImageCleaner) Enqueue(urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		id := c.shardIndex(url)
		select {
		case c.workers[id] <- url:
			metrics.ImageCleanupQueueDepth.WithLabelValues(strconv.Itoa(id)).Inc()
		default:
			metrics.ImageCleanupTotal.WithLabelValues("dropped").Inc()
			c.log.Warn().Str("url", url).Int("worker_id", id).Msg("image cleanup queue full, dropping")
		}
	}
}

// shardIndex maps a URL deterministically to a worker index.
func (c *ImageCleaner) shardIndex(url string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return int(h.Sum32() % uint32(len(c.workers)))
}

func (c *ImageCleaner) runWorker(ctx context.Context, id int, ch <-chan string) {
	depth := metrics.ImageCleanupQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case url, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			c.delete(ctx, id, url)
		}
	}
}

func (c *ImageCleaner) delete(ctx context.Context, id int, url string) {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if err := c.store.Delete(ctx, url); err != nil {
		metrics.ImageCleanupTotal.WithLabelValues("failed").Inc()
		c.log.Error().Err(err).
			Str("url", url).
			Int("worker_id", id).
			Msg("stored image deletion failed")
		return
	}
	metrics.ImageCleanupTotal.WithLabelValues("deleted").Inc()
}
