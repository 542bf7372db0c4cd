package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raywall/bar-order-service/pkg/metrics"
	"github.com/rs/zerolog/log"
)

// Mode define se a entrega bloqueia a resposta.
type Mode string

const (
	ModeSync  Mode = "sync"
	ModeAsync Mode = "async"
)

// Result é o desfecho de uma entrega. Serve apenas para log e testes,
// nunca para decidir a resposta ao cliente.
type Result struct {
	OrderID  string
	Err      error
	Duration time.Duration
}

// Dispatcher executa a notificação fora do fluxo de controle do pedido.
type Dispatcher struct {
	notifier Notifier
	mode     Mode
	timeout  time.Duration
	recorder *metrics.Recorder
	wg       sync.WaitGroup

	// OnResult, quando definido, recebe cada Result (usado em testes).
	OnResult func(Result)
}

// NewDispatcher cria o dispatcher; timeout <= 0 usa 5s.
func NewDispatcher(n Notifier, mode Mode, timeout time.Duration, recorder *metrics.Recorder) *Dispatcher {
	if n == nil {
		n = Nop{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if mode != ModeSync {
		mode = ModeAsync
	}
	return &Dispatcher{
		notifier: n,
		mode:     mode,
		timeout:  timeout,
		recorder: recorder,
	}
}

// Dispatch entrega msg. O contexto da requisição só empresta valores (logger,
// correlation id): cancelamento e deadline dele não afetam a entrega.
func (d *Dispatcher) Dispatch(ctx context.Context, msg OrderMessage) {
	detached := context.WithoutCancel(ctx)
	if d.mode == ModeSync {
		d.deliver(detached, msg)
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(detached, msg)
	}()
}

// Wait bloqueia até as entregas assíncronas pendentes terminarem.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, msg OrderMessage) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.notify(ctx, msg)
	res := Result{OrderID: msg.OrderID, Err: err, Duration: time.Since(start)}

	if err != nil {
		log.Ctx(ctx).Warn().
			Err(err).
			Str("order_id", msg.OrderID).
			Str("tenant_id", msg.TenantID).
			Dur("duration", res.Duration).
			Msg("order notification failed")
		d.recorder.Record(metrics.NotificationFailed, 1)
	}
	if d.OnResult != nil {
		d.OnResult(res)
	}
}

// notify converte panics do sink em erro: a entrega nunca derruba o pedido
// nem o processo.
func (d *Dispatcher) notify(ctx context.Context, msg OrderMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notify: panic: %v", r)
		}
	}()
	return d.notifier.Notify(ctx, msg)
}
