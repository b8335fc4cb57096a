package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/domain"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
)

type appointmentsCache struct {
	cache *lru.Cache[int64, *domain.Appointment]
}

// directoryEntry - единый снимок списка справочника с TTL.
type directoryEntry[T any] struct {
	items     []T
	timestamp time.Time
}

func (e *directoryEntry[T]) fresh(ttl time.Duration) bool {
	return e.items != nil && time.Since(e.timestamp) <= ttl
}

type CacheAdapter struct {
	appointmentsCache *appointmentsCache
	dentists          directoryEntry[domain.Dentist]
	patients          directoryEntry[domain.Patient]
	directoryTTL      time.Duration
	mu                sync.RWMutex
	logger            out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruAppointments, err := lru.New[int64, *domain.Appointment](cfg.Cache.AppointmentsSize)
	if err != nil {
		logger.Error("cache.appointments.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.AppointmentsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		appointmentsCache: &appointmentsCache{cache: lruAppointments},
		directoryTTL:      cfg.DirectoryTTL(),
		logger:            logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	appointment, exists := c.appointmentsCache.cache.Get(id)
	if !exists {
		c.logger.Debug("cache.appointment.get.miss", out.LogFields{
			"appointmentId": id,
		})
		return nil, false
	}

	c.logger.Debug("cache.appointment.get.hit", out.LogFields{
		"appointmentId": id,
	})
	return appointment, true
}

func (c *CacheAdapter) StoreAppointment(ctx context.Context, appointment domain.Appointment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.appointment.store", out.LogFields{
		"appointmentId": appointment.ID,
	})

	c.appointmentsCache.cache.Add(appointment.ID, &appointment)
}

func (c *CacheAdapter) InvalidateAppointment(ctx context.Context, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.appointmentsCache.cache.Remove(id)
}

// Кэширование справочников

func (c *CacheAdapter) GetDentists(ctx context.Context) ([]domain.Dentist, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.dentists.fresh(c.directoryTTL) {
		return nil, false
	}

	return c.dentists.items, true
}

func (c *CacheAdapter) StoreDentists(ctx context.Context, dentists []domain.Dentist) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.dentists.store", out.LogFields{
		"count": len(dentists),
	})

	c.dentists = directoryEntry[domain.Dentist]{
		items:     dentists,
		timestamp: time.Now(),
	}
}

func (c *CacheAdapter) GetPatients(ctx context.Context) ([]domain.Patient, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.patients.fresh(c.directoryTTL) {
		return nil, false
	}

	return c.patients.items, true
}

func (c *CacheAdapter) StorePatients(ctx context.Context, patients []domain.Patient) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.patients.store", out.LogFields{
		"count": len(patients),
	})

	c.patients = directoryEntry[domain.Patient]{
		items:     patients,
		timestamp: time.Now(),
	}
}

func (c *CacheAdapter) InvalidateDirectory(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dentists = directoryEntry[domain.Dentist]{}
	c.patients = directoryEntry[domain.Patient]{}
}
