package httpserver

import (
	"io"
	"log"

	cartsvc "paintland/internal/service/cart"
	"github.com/gin-gonic/gin"
)

const eventBuffer = 16

type badgeEvent struct {
	TotalItemCount int          `json:"totalItemCount"`
	ProductName    string       `json:"productName,omitempty"`
	Persisted      bool         `json:"persisted"`
	Cart           cartResponse `json:"cart"`
}

func toBadgeEvent(ev cartsvc.Event) badgeEvent {
	return badgeEvent{
		TotalItemCount: ev.TotalItemCount,
		ProductName:    ev.ProductName,
		Persisted:      ev.Persisted,
		Cart:           toCartResponse(ev.Items),
	}
}

// cartEventsHandler streams cart change events as server-sent events. The
// first event is a "snapshot" of the current cart. Events are dropped for a
// client that stops reading.
func cartEventsHandler(carts CartRegistry, logger *log.Logger, closing <-chan struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		model := deviceCart(c, carts)
		events := make(chan cartsvc.Event, eventBuffer)
		unsubscribe := model.Subscribe(func(ev cartsvc.Event) {
			select {
			case events <- ev:
			default:
				logger.Printf("cart events: dropped kind=%s for slow client", ev.Kind)
			}
		})
		defer unsubscribe()

		snapshot := toCartResponse(model.Items())
		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.SSEvent("snapshot", badgeEvent{
			TotalItemCount: snapshot.TotalItemCount,
			Persisted:      true,
			Cart:           snapshot,
		})
		c.Writer.Flush()

		ctx := c.Request.Context()
		c.Stream(func(w io.Writer) bool {
			select {
			case ev := <-events:
				c.SSEvent(string(ev.Kind), toBadgeEvent(ev))
				return true
			case <-ctx.Done():
				return false
			case <-closing:
				return false
			}
		})
	}
}
