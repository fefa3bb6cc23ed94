// Package loki ships log entries to a Grafana Loki push endpoint in gzip-compressed batches.
package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Logger reports failures of the pusher itself.
type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {
	// Url of the push endpoint, e.g. https://logs.example.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the number of entries that forces a flush.
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the longest an entry waits before it is flushed.
	BatchMaxWait time.Duration `validate:"gte=1"`

	// BufferSize is the capacity of the entry queue, entries are dropped when it is full.
	BufferSize int `validate:"gte=1"`

	// Labels are attached to the pushed stream.
	Labels map[string]string

	// TenantKey and TenantValue set a tenant header for multi-tenant installations.
	TenantKey   string
	TenantValue string

	// Username and Password enable basic auth when both are set.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 500
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
	Caller  string `json:"caller,omitempty"`
	Fields  any    `json:"fields,omitempty"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

type Pusher struct {
	config  Config
	client  *http.Client
	logger  Logger
	entries chan [2]string
	batch   [][2]string
	cancel  context.CancelFunc
	done    sync.WaitGroup
	once    sync.Once
}

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid loki config: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:  cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		entries: make(chan [2]string, cfg.BufferSize),
		batch:   make([][2]string, 0, cfg.BatchMaxSize),
		cancel:  cancel,
	}

	p.done.Add(1)
	go p.run(ctx)
	return p, nil
}

// Push queues an entry. It never blocks: when the queue is full the entry is dropped.
func (p *Pusher) Push(e LogEntry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	select {
	case p.entries <- [2]string{strconv.FormatInt(time.Now().UnixNano(), 10), string(line)}:
		return nil
	default:
		return fmt.Errorf("loki queue is full, entry dropped")
	}
}

// Stop flushes queued entries and waits for the last push.
func (p *Pusher) Stop() {
	p.once.Do(func() {
		p.cancel()
		p.done.Wait()
	})
}

func (p *Pusher) run(ctx context.Context) {
	defer p.done.Done()

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.drain()
			p.flush()
			return
		case value := <-p.entries:
			p.batch = append(p.batch, value)
			if len(p.batch) >= p.config.BatchMaxSize {
				p.flush()
			}
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *Pusher) drain() {
	for {
		select {
		case value := <-p.entries:
			p.batch = append(p.batch, value)
		default:
			return
		}
	}
}

func (p *Pusher) flush() {
	if len(p.batch) == 0 {
		return
	}
	if err := p.send(p.batch); err != nil {
		p.logger.Error("failed to push logs to loki", "error", err, "entries", len(p.batch))
	}
	p.batch = p.batch[:0]
}

func (p *Pusher) send(values [][2]string) error {
	body, err := encode(pushRequest{Streams: []stream{{Stream: p.config.Labels, Values: values}}})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.config.Url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	if p.config.TenantKey != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}
	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected response from loki: %s, body: %s", resp.Status, string(respBody))
	}

	return nil
}

func encode(request pushRequest) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(request); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}
