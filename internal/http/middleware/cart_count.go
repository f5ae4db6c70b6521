package middleware

import (
	"github.com/gin-gonic/gin"

	"shopfront.dev/app/internal/http/cartcookie"
)

const cartCountKey = "cart_count"

// CartCount exposes the cart badge number to every page.
func CartCount(codec *cartcookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cartCountKey, codec.Get(c).Count())
		c.Next()
	}
}

func GetCartCount(c *gin.Context) int {
	return c.GetInt(cartCountKey)
}
