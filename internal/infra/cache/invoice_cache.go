package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	usecase "github.com/BrilhoLimpeza/cleaning-scheduler/internal/usecase/appointment"
)

// TTL longo o suficiente para o fluxo "copiar link de novo" sem
// segurar URLs de checkout vencidas para sempre.
const invoiceURLTTL = 24 * time.Hour

type RedisInvoiceCache struct {
	client *redis.Client
}

func NewRedisInvoiceCache(client *redis.Client) *RedisInvoiceCache {
	return &RedisInvoiceCache{client: client}
}

func key(appointmentID uint) string {
	return fmt.Sprintf("invoice:url:%d", appointmentID)
}

func (c *RedisInvoiceCache) Get(ctx context.Context, appointmentID uint) (string, error) {
	url, err := c.client.Get(ctx, key(appointmentID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

func (c *RedisInvoiceCache) Set(ctx context.Context, appointmentID uint, url string) error {
	return c.client.Set(ctx, key(appointmentID), url, invoiceURLTTL).Err()
}

var _ usecase.InvoiceURLCache = (*RedisInvoiceCache)(nil)
