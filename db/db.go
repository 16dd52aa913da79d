// Package db persists element attribute snapshots. All engine work runs on a
// single service goroutine fed by an operation queue, so callers on the evq
// loop never block on the database driver directly.
package db

import (
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"

	"github.com/blitline-dev/batik/db/mongo"
	"github.com/blitline-dev/batik/internal/pkg/opmon"
)

// Snapshot maps qualified attribute names to their text, as produced by
// Element.Snapshot. An alias so engines need not import this package.
type Snapshot = map[string]string

// Engine is one storage backend. Engines are driven only from the client's
// service goroutine.
type Engine interface {
	Read(col, id string) (Snapshot, error)
	Write(col, id string, snap Snapshot) error
	Del(col, id string) error
	Exists(col, id string) (bool, error)
	Close()
	IsEOF(err error) bool
}

// Config selects and parameterizes an engine.
type Config interface {
	GetType() string
	GetAddr() string
	GetDB() string
	GetUser() string
	GetPassword() string
}

var (
	clients []*Client
	monOnce sync.Once
)

// Client is a handle to one configured store.
type Client struct {
	cfg                  Config
	engine               Engine
	operationQueue       *xnsyncutil.SyncQueue
	recentWarnedQueueLen int
	shutdownOnce         sync.Once
	shutdownNotify       chan struct{}
}

// GetOrNewClient returns the client for cfg, opening the engine and starting
// its service goroutine on first use. Clients are shared by (type, addr, db).
func GetOrNewClient(cfg Config) (*Client, error) {
	for _, cli := range clients {
		cfg2 := cli.cfg
		if cfg2.GetType() == cfg.GetType() && cfg2.GetAddr() == cfg.GetAddr() && cfg2.GetDB() == cfg.GetDB() {
			return cli, nil
		}
	}

	cli := &Client{
		cfg:            cfg,
		operationQueue: xnsyncutil.NewSyncQueue(),
		shutdownNotify: make(chan struct{}),
	}

	if err := cli.assureEngineReady(); err != nil {
		return nil, errors.Wrapf(err, "db engine %s not ready", cfg.GetType())
	}

	monOnce.Do(func() {
		opmon.Initialize(time.Minute)
	})

	clients = append(clients, cli)
	go cli.serviceRoutine()
	return cli, nil
}

func (c *Client) assureEngineReady() (err error) {
	if c.engine != nil {
		return nil
	}

	switch c.cfg.GetType() {
	case "mongodb":
		c.engine, err = mongo.Open(c.cfg.GetAddr(), c.cfg.GetDB(), c.cfg.GetUser(), c.cfg.GetPassword())
	case "memory":
		c.engine = newMemoryEngine()
	default:
		err = errors.Errorf("unknown db type %q", c.cfg.GetType())
	}
	return err
}

// Save upserts a snapshot. With needReply false the write is fire-and-forget.
func (c *Client) Save(col, id string, snap Snapshot, needReply bool) error {
	req := &saveRequest{col: col, id: id, snap: snap}
	if needReply {
		req.c = make(chan error, 1)
	}

	c.push(req)

	if needReply {
		return <-req.c
	}
	return nil
}

// Load reads a snapshot. A missing document yields a nil snapshot, nil error.
func (c *Client) Load(col, id string) (Snapshot, error) {
	req := &loadRequest{col: col, id: id, c: make(chan *loadResult, 1)}
	c.push(req)
	result := <-req.c
	return result.snap, result.err
}

// Del removes a snapshot.
func (c *Client) Del(col, id string, needReply bool) error {
	req := &delRequest{col: col, id: id}
	if needReply {
		req.c = make(chan error, 1)
	}

	c.push(req)

	if needReply {
		return <-req.c
	}
	return nil
}

// Exists reports whether a snapshot is stored.
func (c *Client) Exists(col, id string) (bool, error) {
	req := &existsRequest{col: col, id: id, c: make(chan *existsResult, 1)}
	c.push(req)
	result := <-req.c
	return result.exists, result.err
}

func (c *Client) push(req request) {
	c.operationQueue.Push(req)
	qlen := c.operationQueue.Len()
	if qlen > 100 && qlen%100 == 0 && c.recentWarnedQueueLen != qlen {
		log.Printf("db %s: operation queue length = %d", c.cfg.GetType(), qlen)
		c.recentWarnedQueueLen = qlen
	}
}

func (c *Client) shutdown() {
	c.shutdownOnce.Do(func() {
		var waitTime time.Duration
		for c.operationQueue.Len() > 0 {
			if waitTime > 10*time.Second {
				log.Printf("db %s: shutdown timeout, %d ops left", c.cfg.GetType(), c.operationQueue.Len())
				break
			}
			t := 100 * time.Millisecond
			waitTime += t
			time.Sleep(t)
		}

		c.operationQueue.Close()
		<-c.shutdownNotify
	})
}

func (c *Client) serviceRoutine() {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("db %s: service routine paniced: %s", c.cfg.GetType(), err)
			return
		}
		if c.engine != nil {
			c.engine.Close()
			c.engine = nil
		}
		close(c.shutdownNotify)
	}()

	for {
		if err := c.assureEngineReady(); err != nil {
			log.Printf("db %s: engine not ready: %s", c.cfg.GetType(), err)
			time.Sleep(time.Second)
			continue
		}

		popped := c.operationQueue.Pop()
		if popped == nil {
			break
		}

		req, ok := popped.(request)
		if !ok {
			log.Printf("db: unknown operation: %v", popped)
			continue
		}

		op := opmon.StartOperation("db:" + req.name())
		if err := req.execute(c.engine); err != nil {
			log.Printf("db %s: %s failed: %s", c.cfg.GetType(), req.name(), err)
			if c.engine.IsEOF(err) {
				c.engine.Close()
				c.engine = nil
			}
		}
		op.Finish(100 * time.Millisecond)
	}
}

// Shutdown drains and closes every client.
func Shutdown() {
	for _, c := range clients {
		c.shutdown()
	}
	clients = nil
}

type request interface {
	name() string
	execute(engine Engine) error
}

type saveRequest struct {
	col  string
	id   string
	snap Snapshot
	c    chan error
}

func (r *saveRequest) name() string { return "save" }

func (r *saveRequest) execute(engine Engine) error {
	err := errors.Wrap(engine.Write(r.col, r.id, r.snap), "write snapshot")
	if r.c != nil {
		r.c <- err
	}
	return err
}

type delRequest struct {
	col string
	id  string
	c   chan error
}

func (r *delRequest) name() string { return "del" }

func (r *delRequest) execute(engine Engine) error {
	err := errors.Wrap(engine.Del(r.col, r.id), "delete snapshot")
	if r.c != nil {
		r.c <- err
	}
	return err
}

type loadRequest struct {
	col string
	id  string
	c   chan *loadResult
}

type loadResult struct {
	snap Snapshot
	err  error
}

func (r *loadRequest) name() string { return "load" }

func (r *loadRequest) execute(engine Engine) error {
	snap, err := engine.Read(r.col, r.id)
	err = errors.Wrap(err, "read snapshot")
	if err != nil {
		snap = nil
	}
	r.c <- &loadResult{snap: snap, err: err}
	return err
}

type existsRequest struct {
	col string
	id  string
	c   chan *existsResult
}

type existsResult struct {
	exists bool
	err    error
}

func (r *existsRequest) name() string { return "exists" }

func (r *existsRequest) execute(engine Engine) error {
	exists, err := engine.Exists(r.col, r.id)
	r.c <- &existsResult{exists: exists, err: errors.Wrap(err, "check snapshot")}
	return err
}
