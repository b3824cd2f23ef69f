package ticket_service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, ttl time.Duration) (TicketServiceContract, *miniredis.Miniredis) {
	t.Helper()
	mockRedis := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewTicketService(rdb, ttl), mockRedis
}

func TestTicket_IssueAndRedeem(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	ticket, appErr := svc.Issue(ctx, "user-1", "alice")
	require.Nil(t, appErr)
	require.NotEmpty(t, ticket.Token)
	assert.Greater(t, ticket.ExpiresAt, time.Now().Unix())

	redeemed, err := svc.Redeem(ctx, ticket.Token)
	require.Nil(t, err)
	assert.Equal(t, "user-1", redeemed.UserID)
	assert.Equal(t, "alice", redeemed.Username)
}

func TestTicket_RedeemConsumes(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	ticket, appErr := svc.Issue(ctx, "user-1", "alice")
	require.Nil(t, appErr)

	_, err := svc.Redeem(ctx, ticket.Token)
	require.Nil(t, err)

	// second redemption of the same token must fail as not-found
	_, err = svc.Redeem(ctx, ticket.Token)
	require.NotNil(t, err)
	assert.Equal(t, AuthNotFound, err.Kind)
}

func TestTicket_ConcurrentRedeem_SingleWinner(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	ticket, appErr := svc.Issue(ctx, "user-1", "alice")
	require.Nil(t, appErr)

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan *AuthError, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Redeem(ctx, ticket.Token)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for err := range results {
		if err == nil {
			winners++
		} else {
			assert.Equal(t, AuthNotFound, err.Kind)
		}
	}
	assert.Equal(t, 1, winners, "exactly one redemption must succeed")
}

func TestTicket_ExpiredIsExpired_NotNotFound(t *testing.T) {
	svc, _ := newTestService(t, 10*time.Millisecond)
	ctx := context.Background()

	ticket, appErr := svc.Issue(ctx, "user-1", "alice")
	require.Nil(t, appErr)

	// wait past the validity window; the grace TTL keeps the key around so
	// expiry can be reported precisely
	time.Sleep(1100 * time.Millisecond)

	_, err := svc.Redeem(ctx, ticket.Token)
	require.NotNil(t, err)
	assert.Equal(t, AuthExpired, err.Kind)

	// the expired redemption consumed the ticket as a side effect
	_, err = svc.Redeem(ctx, ticket.Token)
	require.NotNil(t, err)
	assert.Equal(t, AuthNotFound, err.Kind)
}

func TestTicket_MalformedToken(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	_, err := svc.Redeem(context.Background(), "not-a-token")
	require.NotNil(t, err)
	assert.Equal(t, AuthMalformed, err.Kind)
}

func TestTicket_UnknownToken(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	_, err := svc.Redeem(context.Background(), "b3bb6dc4-d79c-4ae7-9a5c-9d4f2d9c0001")
	require.NotNil(t, err)
	assert.Equal(t, AuthNotFound, err.Kind)
}

func TestTicket_StoreFailureIsInternal(t *testing.T) {
	svc, mockRedis := newTestService(t, time.Hour)
	ctx := context.Background()

	ticket, appErr := svc.Issue(ctx, "user-1", "alice")
	require.Nil(t, appErr)

	// redis outage must not be reported as a bad ticket
	mockRedis.SetError("connection refused")
	_, err := svc.Redeem(ctx, ticket.Token)
	require.NotNil(t, err)
	assert.Equal(t, AuthInternal, err.Kind)

	// the outage consumed nothing, the ticket still redeems afterwards
	mockRedis.SetError("")
	redeemed, err := svc.Redeem(ctx, ticket.Token)
	require.Nil(t, err)
	assert.Equal(t, "user-1", redeemed.UserID)
}
