package handler

import (
	"github.com/gofiber/fiber/v2"

	"netbelge/internal/model"
	"netbelge/internal/service"
)

// ListFiles godoc
//
//	@Summary	List the files of a document
//	@Tags		files
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"document id"
//	@Success	200	{array}	model.DocumentFile
//	@Failure	404	{object}	errorPayload
//	@Router		/api/documents/{id}/files [get]
func ListFiles(svc service.DocumentFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		files, err := svc.List(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		if files == nil {
			files = []model.DocumentFile{}
		}
		return c.JSON(files)
	}
}

// UploadFile stores a multipart upload (field "file", optional "content"
// holding extracted text) under the document's upload path.
//
//	@Summary	Upload a file to a document
//	@Tags		files
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"document id"
//	@Param		file	formData	file	true	"file to upload"
//	@Param		content	formData	string	false	"extracted text"
//	@Success	201		{object}	model.DocumentFile
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/api/documents/{id}/files [post]
func UploadFile(svc service.DocumentFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		file, err := svc.Upload(c.UserContext(), f, service.FileUpload{
			DocumentID:  id,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Content:     c.FormValue("content"),
		})
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// GetFile godoc
//
//	@Summary	Get file metadata
//	@Tags		files
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"file id"
//	@Success	200	{object}	model.DocumentFile
//	@Failure	404	{object}	errorPayload
//	@Router		/api/document-files/{id} [get]
func GetFile(svc service.DocumentFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		file, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(file)
	}
}

// DownloadFile redirects to a short-lived presigned URL for the stored object.
//
//	@Summary	Download a file
//	@Tags		files
//	@Security	BearerAuth
//	@Param		id	path	string	true	"file id"
//	@Success	302
//	@Failure	404	{object}	errorPayload
//	@Router		/api/document-files/{id}/download [get]
func DownloadFile(svc service.DocumentFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		url, err := svc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}

// DeleteFile godoc
//
//	@Summary	Delete a file
//	@Tags		files
//	@Security	BearerAuth
//	@Param		id	path	string	true	"file id"
//	@Success	204
//	@Failure	404	{object}	errorPayload
//	@Router		/api/document-files/{id} [delete]
func DeleteFile(svc service.DocumentFileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
