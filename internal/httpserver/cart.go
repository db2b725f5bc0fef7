package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"paintland/internal/domain"
	cartsvc "paintland/internal/service/cart"
	ordersvc "paintland/internal/service/order"
	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type checkoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

type cartResponse struct {
	Items          []cartLineResponse `json:"items"`
	TotalItemCount int                `json:"totalItemCount"`
}

type cartLineResponse struct {
	Key         string         `json:"key"`
	ProductID   string         `json:"productId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	BrandID     string         `json:"brandId,omitempty"`
	Color       *colorResponse `json:"color"`
	ColorLabel  string         `json:"colorLabel"`
	Quantity    int            `json:"quantity"`
}

type colorResponse struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Hex      *string `json:"hex"`
	Migrated bool    `json:"migrated,omitempty"`
}

type checkoutResponse struct {
	Lines         []checkoutLineResponse `json:"lines"`
	TotalQuantity int                    `json:"totalQuantity"`
	Timestamp     string                 `json:"timestamp"`
	DisplayText   string                 `json:"displayText"`
	Message       string                 `json:"message"`
	WhatsAppURL   string                 `json:"whatsappUrl"`
}

type checkoutLineResponse struct {
	Name       string `json:"name"`
	ColorLabel string `json:"colorLabel"`
	Quantity   int    `json:"quantity"`
}

func toCartResponse(items []domain.LineItem) cartResponse {
	lines := make([]cartLineResponse, 0, len(items))
	for _, item := range items {
		line := cartLineResponse{
			Key:         item.Key,
			ProductID:   item.ProductID,
			Name:        item.Name,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			BrandID:     item.BrandID,
			ColorLabel:  ordersvc.ColorLabel(item.Shade),
			Quantity:    item.Quantity,
		}
		if item.Shade != nil {
			line.Color = &colorResponse{
				ID:       item.Shade.ID,
				Code:     item.Shade.Code,
				Name:     item.Shade.Name,
				Hex:      item.Shade.Hex,
				Migrated: item.Shade.Migrated,
			}
		}
		lines = append(lines, line)
	}
	return cartResponse{Items: lines, TotalItemCount: domain.TotalQuantity(items)}
}

func toCheckoutResponse(out *ordersvc.Checkout) checkoutResponse {
	lines := make([]checkoutLineResponse, 0, len(out.Summary.Lines))
	for _, l := range out.Summary.Lines {
		lines = append(lines, checkoutLineResponse{Name: l.Name, ColorLabel: l.ColorLabel, Quantity: l.Quantity})
	}
	return checkoutResponse{
		Lines:         lines,
		TotalQuantity: out.Summary.TotalQuantity,
		Timestamp:     out.Summary.TimestampDisplay,
		DisplayText:   out.DisplayText,
		Message:       out.Message,
		WhatsAppURL:   out.WhatsAppURL,
	}
}

func deviceCart(c *gin.Context, carts CartRegistry) *cartsvc.Model {
	return carts.Get(c.Request.Context(), cartNamespace(deviceFromContext(c)))
}

func getCartHandler(carts CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		model := deviceCart(c, carts)
		c.JSON(http.StatusOK, toCartResponse(model.Items()))
	}
}

func addCartItemHandler(carts CartRegistry, catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "InvalidJsonInput", "Request body does not contain valid JSON.")
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if quantity < 1 {
			writeDomainError(c, domain.ErrInvalidQuantity)
			return
		}

		ctx := c.Request.Context()
		product, variant, err := catalog.ResolveCartItem(ctx, req.ProductID, req.VariantID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		model := deviceCart(c, carts)
		if err := model.AddItem(ctx, product, variant, quantity); err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(model.Items()))
	}
}

func updateCartItemHandler(carts CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "InvalidJsonInput", "Request body does not contain valid JSON.")
			return
		}
		if req.Quantity == nil {
			writeError(c, http.StatusBadRequest, "RequiredField", "quantity is required")
			return
		}
		model := deviceCart(c, carts)
		model.UpdateQuantity(c.Request.Context(), c.Param("key"), *req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(model.Items()))
	}
}

func removeCartItemHandler(carts CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		model := deviceCart(c, carts)
		model.RemoveItem(c.Request.Context(), c.Param("key"))
		c.JSON(http.StatusOK, toCartResponse(model.Items()))
	}
}

func clearCartHandler(carts CartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		model := deviceCart(c, carts)
		model.Clear(c.Request.Context())
		c.JSON(http.StatusOK, toCartResponse(model.Items()))
	}
}

func cartSummaryHandler(carts CartRegistry, orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		model := deviceCart(c, carts)
		c.String(http.StatusOK, orders.Summarize(model.Items()).DisplayText())
	}
}

func checkoutHandler(carts CartRegistry, orders OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		// An empty body means no customer details.
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(c, http.StatusBadRequest, "InvalidJsonInput", "Request body does not contain valid JSON.")
			return
		}
		customer := &ordersvc.CustomerInfo{
			Name:    strings.TrimSpace(req.Name),
			Phone:   strings.TrimSpace(req.Phone),
			Address: strings.TrimSpace(req.Address),
			Note:    strings.TrimSpace(req.Note),
		}
		model := deviceCart(c, carts)
		out, err := orders.Checkout(model.Items(), customer)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCheckoutResponse(out))
	}
}
