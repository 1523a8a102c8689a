package controllers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"mini-instagram/dto"
	"mini-instagram/internal/apperr"
	"mini-instagram/internal/storage"
	"mini-instagram/internal/utils"
)

type UploadHandler struct {
	Store *storage.Store
}

// @Summary      Upload media
// @Description  Multipart field "image"; images and videos up to 50MB.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image or video file"
// @Success      200    {object}  dto.Response{data=dto.UploadResp}
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	var meta *storage.FileMeta
	fh, err := c.FormFile("image")
	if err == nil {
		meta = &storage.FileMeta{Size: fh.Size, MimeType: fh.Header.Get("Content-Type")}
	}
	if v := h.Store.Validate(meta); !v.Valid {
		return apperr.New(apperr.BadRequest, v.Error)
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	obj, err := h.Store.Save(ctx, data, meta.MimeType)
	if err != nil {
		return err
	}
	utils.Logger.Info("media uploaded", zap.String("id", obj.ID), zap.Int64("bytes", meta.Size))

	return c.JSON(dto.OK(dto.UploadResp{
		UUID:      obj.ID,
		URL:       obj.URL,
		Filename:  obj.Filename,
		MediaType: storage.MediaKind(meta.MimeType),
	}))
}

// @Summary      Delete uploaded media
// @Tags         upload
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path     string  true  "Media UUID"
// @Success      200   {object} dto.Response
// @Failure      404   {object} dto.ErrorResponse
// @Router       /api/upload/{uuid} [delete]
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Store.Delete(ctx, c.Params("uuid"))
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.NotFound, "Image not found")
	}
	return c.JSON(dto.OKMessage("Image deleted successfully"))
}

// Serve streams a stored object for GET /uploads/:filename.
func (h *UploadHandler) Serve(c *fiber.Ctx) error {
	name := c.Params("filename")
	rc, err := h.Store.Open(c.UserContext(), name)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, storage.ContentTypeForFile(name))
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.SendStream(rc)
}
