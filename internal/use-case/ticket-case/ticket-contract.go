package ticket_service

import (
	"context"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
)

type TicketServiceContract interface {
	// Issue mints a single-use websocket ticket for the user. The token is
	// returned exactly once and is never retrievable again.
	Issue(ctx context.Context, userID, username string) (*entity.Ticket, *app_error.AppError)
	// Redeem consumes the ticket. Exactly one concurrent redeemer wins; every
	// other attempt observes AuthNotFound.
	Redeem(ctx context.Context, token string) (*entity.Ticket, *AuthError)
}
