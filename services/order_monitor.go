package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yeremiapane/kitsu-storefront/models"
	"github.com/yeremiapane/kitsu-storefront/utils"
)

// OrderLister is satisfied by AdminService.
type OrderLister interface {
	ListOrders(ctx context.Context) ([]models.AdminOrder, error)
}

// OrderMonitor refreshes the admin order list on a ticker and hands every
// successful result to OnOrders. It stops by itself once the session is gone.
type OrderMonitor struct {
	lister   OrderLister
	interval time.Duration
	timeout  time.Duration

	OnOrders func([]models.AdminOrder)
	OnError  func(error)

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

func NewOrderMonitor(lister OrderLister, interval, timeout time.Duration) *OrderMonitor {
	return &OrderMonitor{
		lister:   lister,
		interval: interval,
		timeout:  timeout,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start refreshes once immediately, then on every tick.
func (m *OrderMonitor) Start() {
	go func() {
		defer close(m.done)

		if !m.refresh() {
			return
		}

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !m.refresh() {
					return
				}
			case <-m.stopChan:
				return
			}
		}
	}()
	utils.InfoLogger.WithField("interval", m.interval).Info("Order monitor started")
}

func (m *OrderMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// Done is closed when the polling goroutine has exited.
func (m *OrderMonitor) Done() <-chan struct{} {
	return m.done
}

// refresh returns false when polling should end.
func (m *OrderMonitor) refresh() bool {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	orders, err := m.lister.ListOrders(ctx)
	if err != nil {
		if m.OnError != nil {
			m.OnError(err)
		}
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotLoggedIn) {
			utils.ErrorLogger.WithError(err).Warn("Order monitor stopping, session ended")
			return false
		}
		utils.ErrorLogger.WithError(err).Warn("Failed to refresh orders")
		return true
	}

	if m.OnOrders != nil {
		m.OnOrders(orders)
	}
	return true
}
