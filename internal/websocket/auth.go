package websocket

import (
	"net/http"

	"github.com/Javier1520/share-board/internal/entity"
	ticket_service "github.com/Javier1520/share-board/internal/use-case/ticket-case"
)

// AuthenticatorFunc resolves a handshake request into the identity carried
// by its ticket. It runs after the upgrade so failures can be reported with
// a proper close code.
type AuthenticatorFunc func(r *http.Request) (*entity.Ticket, *ticket_service.AuthError)

// TicketAuth redeems the single-use ticket from the token query parameter.
// Redemption consumes the ticket, so a second handshake with the same token
// fails even if the first connection is still alive.
func TicketAuth(tickets ticket_service.TicketServiceContract) AuthenticatorFunc {
	return func(r *http.Request) (*entity.Ticket, *ticket_service.AuthError) {
		token := r.URL.Query().Get("token")
		if token == "" {
			return nil, &ticket_service.AuthError{
				Kind:    ticket_service.AuthMissing,
				Message: "missing ticket token",
			}
		}

		return tickets.Redeem(r.Context(), token)
	}
}
