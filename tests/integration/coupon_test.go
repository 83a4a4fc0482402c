//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Eursukkul/event-registration-service/internal/repository"
	"github.com/Eursukkul/event-registration-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCoupon_ConcurrentConsumeSingleWinner(t *testing.T) {
	cleanTables()

	repo := repository.NewCouponRepository(testDB)
	svc := service.NewCouponService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), "RACE50", 50, "admin")
	assert.NoError(t, err)

	const workers = 10
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Consume(context.Background(), "RACE50",
				fmt.Sprintf("user%d@example.com", i))
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := 0; i < workers; i++ {
		if errs[i] == nil {
			winners++
		} else {
			assert.ErrorIs(t, errs[i], service.ErrCouponInvalid, "worker %d", i)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestCoupon_ValidateDoesNotSpend(t *testing.T) {
	cleanTables()

	repo := repository.NewCouponRepository(testDB)
	svc := service.NewCouponService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), "PEEK10", 10, "admin")
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := svc.Validate(context.Background(), "peek10")
		assert.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, 10.0, res.Discount)
	}

	res, err := svc.Consume(context.Background(), "PEEK10", "a@example.com")
	assert.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestCoupon_MarkUnusedRestoresCoupon(t *testing.T) {
	cleanTables()

	repo := repository.NewCouponRepository(testDB)
	svc := service.NewCouponService(repo, zerolog.Nop())

	coupon, err := svc.Create(context.Background(), "REDO25", 25, "admin")
	assert.NoError(t, err)

	_, err = svc.Consume(context.Background(), "REDO25", "a@example.com")
	assert.NoError(t, err)

	_, err = svc.Consume(context.Background(), "REDO25", "b@example.com")
	assert.ErrorIs(t, err, service.ErrCouponInvalid)

	_, err = svc.MarkUnused(context.Background(), coupon.ID, "admin")
	assert.NoError(t, err)

	res, err := svc.Consume(context.Background(), "REDO25", "b@example.com")
	assert.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestCoupon_GenerateBatchIsUnique(t *testing.T) {
	cleanTables()

	repo := repository.NewCouponRepository(testDB)
	svc := service.NewCouponService(repo, zerolog.Nop())

	batch, err := svc.Generate(context.Background(), 25, 15, "admin")
	assert.NoError(t, err)
	assert.Len(t, batch, 25)

	codes := make(map[string]bool)
	for _, c := range batch {
		assert.False(t, codes[c.Code], "duplicate code %s", c.Code)
		codes[c.Code] = true
	}
}
