package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/kitsu-storefront/utils"
)

// ChangeSource reports whether the persisted cart was written by someone
// else. storage.CartStore implements it.
type ChangeSource interface {
	ChangedExternally() (bool, error)
}

// Reloader is satisfied by cart.Engine.
type Reloader interface {
	Reload()
}

// ChangeMonitor polls the persisted cart version and reloads the engine when
// another process has written it. Last writer wins: a write that lands
// between our load and our save is overwritten.
type ChangeMonitor struct {
	source   ChangeSource
	target   Reloader
	Interval time.Duration

	stopOnce sync.Once
	StopChan chan struct{}
}

func NewChangeMonitor(source ChangeSource, target Reloader, interval time.Duration) *ChangeMonitor {
	return &ChangeMonitor{
		source:   source,
		target:   target,
		Interval: interval,
		StopChan: make(chan struct{}),
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.CheckChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	cm.stopOnce.Do(func() { close(cm.StopChan) })
}

// CheckChanges runs one poll. It reports whether a reload happened.
func (cm *ChangeMonitor) CheckChanges() bool {
	changed, err := cm.source.ChangedExternally()
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("Failed to check cart version")
		return false
	}
	if !changed {
		return false
	}

	utils.InfoLogger.Debug("Cart changed in another session, reloading")
	cm.target.Reload()
	return true
}
