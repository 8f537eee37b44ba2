package cache

import (
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/ledger-bot/internal/logger"
)

const (
	updateKeyPrefix = "tg-update:"
	updateTTL       = 24 * time.Hour
)

type config interface {
	Hosts() []string
}

// UpdateGuard remembers Telegram update ids so a redelivered update is processed once.
type UpdateGuard struct {
	client *memcache.Client
}

func NewUpdateGuard(config config) (*UpdateGuard, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &UpdateGuard{mc}, mc.Ping()
}

func updateKey(updateID int) string {
	return updateKeyPrefix + strconv.Itoa(updateID)
}

// FirstSeen stores the update id and reports whether it was absent before.
func (g *UpdateGuard) FirstSeen(updateID int) (bool, error) {
	err := g.client.Add(&memcache.Item{
		Key:        updateKey(updateID),
		Value:      []byte{1},
		Expiration: int32(updateTTL.Seconds()),
	})
	if errors.Is(err, memcache.ErrNotStored) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "memcache add")
	}
	return true, nil
}
