package ticket_service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/Javier1520/share-board/internal/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Tickets outlive their validity window in Redis by this much so that an
// unconsumed expired ticket is classified as expired instead of not-found.
const expiryGrace = 1 * time.Hour

type TicketService struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewTicketService(rdb *redis.Client, ttl time.Duration) TicketServiceContract {
	return &TicketService{
		Redis: rdb,
		TTL:   ttl,
	}
}

func ticketKey(token string) string {
	return fmt.Sprintf("ticket:%s", token)
}

func (s *TicketService) Issue(ctx context.Context, userID, username string) (*entity.Ticket, *app_error.AppError) {
	now := time.Now()
	ticket := &entity.Ticket{
		Token:     uuid.New().String(),
		UserID:    userID,
		Username:  username,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.TTL).Unix(),
	}

	if err := utils.SetCacheData(ctx, s.Redis, ticketKey(ticket.Token), ticket, s.TTL+expiryGrace); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("ticket: failed to store ticket")
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to store ticket", "redis")
	}

	return ticket, nil
}

func (s *TicketService) Redeem(ctx context.Context, token string) (*entity.Ticket, *AuthError) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, newAuthError(AuthMalformed, "malformed ticket token")
	}

	// GETDEL is the single-winner guarantee: concurrent redemptions of the
	// same token race on one atomic check-and-delete, losers see redis.Nil.
	val, err := s.Redis.GetDel(ctx, ticketKey(token)).Result()
	if err == redis.Nil {
		return nil, newAuthError(AuthNotFound, "ticket not found or already used")
	} else if err != nil {
		// store failure, not a verdict on the ticket; the ticket may well
		// still be redeemable once redis is back
		log.Error().Err(err).Msg("ticket: redeem lookup failed")
		return nil, newAuthError(AuthInternal, "ticket lookup failed")
	}

	var ticket entity.Ticket
	if err := json.Unmarshal([]byte(val), &ticket); err != nil {
		return nil, newAuthError(AuthMalformed, "corrupt ticket record")
	}

	// The key was already consumed above, so an expired ticket cannot be
	// replayed either.
	if time.Now().Unix() >= ticket.ExpiresAt {
		return nil, newAuthError(AuthExpired, "ticket expired")
	}

	return &ticket, nil
}
