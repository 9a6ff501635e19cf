package runner

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type ProgressTracker interface {
	SetMessage(msg string)
	SetTotal(total int64)
	SetDone(n int)
	SetError(err error)
	MarkFinished()
}

type NoopProgressTracker struct{}

var _ ProgressTracker = NoopProgressTracker{}

func (n NoopProgressTracker) SetMessage(msg string) {}
func (n NoopProgressTracker) SetTotal(total int64)  {}
func (n NoopProgressTracker) SetDone(n2 int)        {}
func (n NoopProgressTracker) SetError(err error)    {}
func (n NoopProgressTracker) MarkFinished()         {}

// LogProgressTracker reports progress as debug log entries. A nil Logger
// logs to the standard logger.
type LogProgressTracker struct {
	Logger logrus.FieldLogger

	mu    sync.Mutex
	msg   string
	total int64
}

var _ ProgressTracker = (*LogProgressTracker)(nil)

func (p *LogProgressTracker) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}

func (p *LogProgressTracker) SetMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msg = msg
}

func (p *LogProgressTracker) SetTotal(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
}

func (p *LogProgressTracker) SetDone(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger().WithFields(logrus.Fields{"done": n, "total": p.total}).Debug(p.msg)
}

func (p *LogProgressTracker) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger().WithError(err).Error(p.msg)
}

func (p *LogProgressTracker) MarkFinished() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger().WithField("total", p.total).Debug(p.msg + ": finished")
}
