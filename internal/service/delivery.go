package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tour-manager/pkg/logger"
)

const (
	DefaultNotifyTimeout     = 10 * time.Second
	DefaultNotifyConcurrency = 8
)

// NotifyConfig bounds the notification fan-out.
type NotifyConfig struct {
	Timeout     time.Duration
	Concurrency int
}

func (c NotifyConfig) withDefaults() NotifyConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultNotifyTimeout
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultNotifyConcurrency
	}
	return c
}

// Delivery is the outcome of one notification attempt.
type Delivery struct {
	GuideID   int64  `json:"guide_id"`
	Handle    string `json:"handle"`
	Delivered bool   `json:"delivered"`
}

// DeliveryReport lists the outcome of every attempt of one fan-out.
type DeliveryReport struct {
	Deliveries []Delivery `json:"deliveries"`
}

func (r *DeliveryReport) Attempted() int {
	if r == nil {
		return 0
	}
	return len(r.Deliveries)
}

func (r *DeliveryReport) Delivered() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Deliveries {
		if d.Delivered {
			n++
		}
	}
	return n
}

func (r *DeliveryReport) Failed() int {
	return r.Attempted() - r.Delivered()
}

type recipient struct {
	GuideID int64
	Handle  string
	Text    string
}

type dispatcher struct {
	notifier Notifier
	cfg      NotifyConfig
	log      *zap.Logger
}

// deliver sends every message independently and waits for all of them.
// Sends are detached from ctx cancellation and bounded by cfg.Timeout each.
func (d *dispatcher) deliver(ctx context.Context, operation string, rs []recipient) *DeliveryReport {
	report := &DeliveryReport{Deliveries: make([]Delivery, len(rs))}
	if len(rs) == 0 {
		return report
	}

	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(d.cfg.Concurrency)
	for i, r := range rs {
		i, r := i, r
		g.Go(func() error {
			delivered := d.send(ctx, r)
			report.Deliveries[i] = Delivery{GuideID: r.GuideID, Handle: r.Handle, Delivered: delivered}
			if !delivered {
				d.log.Warn("Notification delivery failed",
					zap.String(logger.FieldOperation, operation),
					zap.Int64(logger.FieldGuideID, r.GuideID),
					zap.String(logger.FieldHandle, r.Handle),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	d.log.Info("Notifications dispatched",
		zap.String(logger.FieldOperation, operation),
		zap.Int("attempted", report.Attempted()),
		zap.Int("delivered", report.Delivered()),
	)
	return report
}

func (d *dispatcher) send(ctx context.Context, r recipient) (delivered bool) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()
	defer func() {
		if p := recover(); p != nil {
			d.log.Error("Notifier panicked",
				zap.Int64(logger.FieldGuideID, r.GuideID),
				zap.String(logger.FieldError, fmt.Sprint(p)),
			)
			delivered = false
		}
	}()
	return d.notifier.Send(ctx, r.Handle, r.Text)
}
