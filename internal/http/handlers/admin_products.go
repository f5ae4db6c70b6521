package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront.dev/app/internal/http/flash"
	"shopfront.dev/app/internal/http/middleware"
	"shopfront.dev/app/internal/http/render"
	"shopfront.dev/app/internal/http/validation"
	"shopfront.dev/app/internal/modules/admin"
	"shopfront.dev/app/internal/shared/apperr"
	"shopfront.dev/app/internal/storage"
	"shopfront.dev/app/pkg/view"
)

// AdminProductsHandler serves the product creation form.
type AdminProductsHandler struct {
	Submitter *admin.Submitter
	Storage   storage.Storage // nil disables uploads
	Flash     *flash.Codec
	Log       *slog.Logger
}

func NewAdminProductsHandler(sub *admin.Submitter, store storage.Storage, flashCodec *flash.Codec, l *slog.Logger) *AdminProductsHandler {
	return &AdminProductsHandler{Submitter: sub, Storage: store, Flash: flashCodec, Log: l}
}

// New handles GET /admin. Each render carries a fresh submission token.
func (h *AdminProductsHandler) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, admin.Cleared(admin.NewToken()), nil, "", "")
}

// Create handles POST /admin/products.
func (h *AdminProductsHandler) Create(c *gin.Context) {
	var form admin.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, validation.FromBindError(err, &form), "", "")
		return
	}

	typedURL := form.ImageURL
	uploadKey, err := h.upload(c, &form)
	if err != nil {
		fe := validation.FieldErrors{}
		fe.Add("image", uploadMessage(err))
		h.renderForm(c, http.StatusBadRequest, form, fe, "", "")
		return
	}

	_, err = h.Submitter.Submit(c.Request.Context(), form)
	if err == nil {
		render.RedirectWithFlash(c, h.Flash, "/admin", view.FlashSuccess, admin.MsgCreated)
		return
	}

	h.discardUpload(c.Request.Context(), uploadKey)
	form.ImageURL = typedURL

	var fieldErr *admin.FieldError
	switch {
	case errors.As(err, &fieldErr):
		fe := validation.FieldErrors{}
		fe.Add(fieldErr.Field, fieldMessage(fieldErr))
		h.renderForm(c, http.StatusBadRequest, form, fe, "", "")
	case errors.Is(err, admin.ErrMissingToken):
		form.Token = admin.NewToken()
		h.renderForm(c, http.StatusBadRequest, form, nil, "The form expired. Please submit it again.", view.FlashWarning)
	case errors.Is(err, admin.ErrAlreadySubmitted):
		render.RedirectWithFlash(c, h.Flash, "/admin", view.FlashWarning, admin.Message(err))
	case errors.Is(err, admin.ErrSubmissionInFlight):
		h.renderForm(c, http.StatusConflict, form, nil, admin.Message(err), view.FlashWarning)
	default:
		// already logged by the submitter; the page only gets the generic text
		ae := apperr.UnavailableErr(admin.Message(err), err)
		if middleware.WantsJSON(c) {
			middleware.Fail(c, ae)
			return
		}
		h.renderForm(c, apperr.HTTPStatus(ae), form, nil, ae.PublicMsg, view.FlashError)
	}
}

// upload stores an attached image and points the form at it. No file, or a
// handler without storage, leaves the typed image_url alone.
func (h *AdminProductsHandler) upload(c *gin.Context, form *admin.ProductForm) (string, error) {
	if h.Storage == nil {
		return "", nil
	}
	fh, err := c.FormFile("image")
	if err != nil || fh == nil || fh.Size == 0 {
		return "", nil
	}

	in := storage.PutInput{
		Name:        form.Name,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if err := storage.CheckImage(in); err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := h.Storage.Put(c.Request.Context(), f, in)
	if err != nil {
		h.Log.ErrorContext(c.Request.Context(), "image upload failed", slog.String("filename", fh.Filename), slog.Any("err", err))
		return "", err
	}
	form.ImageURL = res.URL
	return res.Key, nil
}

func (h *AdminProductsHandler) discardUpload(ctx context.Context, key string) {
	if key == "" || h.Storage == nil {
		return
	}
	if err := h.Storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		h.Log.WarnContext(ctx, "orphan image not removed", slog.String("key", key), slog.Any("err", err))
	}
}

func (h *AdminProductsHandler) renderForm(c *gin.Context, status int, form admin.ProductForm, fe validation.FieldErrors, msg string, kind view.FlashKind) {
	render.Page(c, status, "admin.html", view.AdminProductPage{
		Flash:     middleware.GetFlash(c),
		CartCount: middleware.GetCartCount(c),
		Form: view.AdminProductForm{
			Name:        form.Name,
			Description: form.Description,
			Price:       form.Price,
			Stock:       form.Stock,
			ImageURL:    form.ImageURL,
			Token:       form.Token,
		},
		Message:     msg,
		MessageKind: kind,
		FieldErrors: fe,
	})
}

func fieldMessage(err *admin.FieldError) string {
	switch {
	case errors.Is(err, admin.ErrInvalidPrice):
		return "Price must be a number."
	case errors.Is(err, admin.ErrInvalidStock):
		return "Stock must be a whole number."
	default:
		return "Invalid value."
	}
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return "Image is larger than 5 MB."
	case errors.Is(err, storage.ErrUnsupportedType):
		return "Use a PNG, JPEG, WebP or GIF image."
	default:
		return "The image could not be stored."
	}
}
