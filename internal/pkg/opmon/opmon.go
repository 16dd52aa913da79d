// Package opmon records per-operation timing and periodically dumps a
// summary to the log.
package opmon

import (
	"log"
	"sync"
	"time"

	"github.com/blitline-dev/batik/internal/pkg/utils"
)

var (
	operationAllocPool = sync.Pool{
		New: func() interface{} {
			return &Operation{}
		},
	}

	monitor = newMonitor()
)

// Initialize starts the periodic dump. dumpInterval <= 0 disables it.
func Initialize(dumpInterval time.Duration) {
	if dumpInterval <= 0 {
		return
	}
	go func() {
		for {
			time.Sleep(dumpInterval)
			utils.CatchPanic(monitor.Dump)
		}
	}()
}

type opInfo struct {
	count         uint64
	totalDuration time.Duration
	maxDuration   time.Duration
}

type opMonitor struct {
	sync.Mutex
	opInfos map[string]*opInfo
}

func newMonitor() *opMonitor {
	return &opMonitor{
		opInfos: map[string]*opInfo{},
	}
}

func (m *opMonitor) record(opname string, duration time.Duration) {
	m.Lock()
	info := m.opInfos[opname]
	if info == nil {
		info = &opInfo{}
		m.opInfos[opname] = info
	}
	info.count++
	info.totalDuration += duration
	if duration > info.maxDuration {
		info.maxDuration = duration
	}
	m.Unlock()
}

func (m *opMonitor) Dump() {
	m.Lock()
	opInfos := m.opInfos
	m.opInfos = map[string]*opInfo{}
	m.Unlock()

	for opname, info := range opInfos {
		log.Printf("opmon: %-30sx%-10d AVG %-10s MAX %-10s", opname, info.count,
			info.totalDuration/time.Duration(info.count), info.maxDuration)
	}
}

type Operation struct {
	name      string
	startTime time.Time
}

func StartOperation(operationName string) *Operation {
	op := operationAllocPool.Get().(*Operation)
	op.name = operationName
	op.startTime = time.Now()
	return op
}

func (op *Operation) Finish(warnThreshold time.Duration) {
	takeTime := time.Since(op.startTime)
	monitor.record(op.name, takeTime)
	if warnThreshold > 0 && takeTime >= warnThreshold {
		log.Printf("opmon: operation %s takes %s > %s", op.name, takeTime, warnThreshold)
	}
	operationAllocPool.Put(op)
}
