package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront.dev/app/internal/http/flash"
	"shopfront.dev/app/internal/http/middleware"
	"shopfront.dev/app/pkg/view"
)

// Page renders one of the embedded templates by file name.
func Page(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}

// ErrorPage matches middleware.PageFunc.
func ErrorPage(c *gin.Context, status int, msg string, requestID string) {
	Page(c, status, "error.html", view.ErrorPage{
		Flash:     middleware.GetFlash(c),
		CartCount: middleware.GetCartCount(c),
		Status:    status,
		Title:     http.StatusText(status),
		Message:   msg,
		RequestID: requestID,
	})
}

// RedirectWithFlash is the post/redirect/get exit of every form handler.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusSeeOther, location)
}

// Redirect without a message.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
