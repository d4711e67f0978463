package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"netbelge/internal/model"
	"netbelge/internal/service"
)

type documentRequest struct {
	DepartmentID   string  `json:"department_id" validate:"required,uuid4"`
	DocumentTypeID string  `json:"document_type_id" validate:"required,uuid4"`
	Title          string  `json:"title" validate:"required,max=100"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time           *string `json:"time"`
	DocumentNo     string  `json:"document_no" validate:"required,max=100"`
	Description    string  `json:"description"`
}

// input assumes Date already passed the datetime tag.
func (r documentRequest) input() service.DocumentInput {
	date, _ := time.Parse(dateLayout, r.Date)
	return service.DocumentInput{
		DepartmentID:   r.DepartmentID,
		DocumentTypeID: r.DocumentTypeID,
		Title:          r.Title,
		Date:           date,
		Time:           r.Time,
		DocumentNo:     r.DocumentNo,
		Description:    r.Description,
	}
}

// documentResponse renders Date as a calendar day.
type documentResponse struct {
	*model.Document
	Date string `json:"date"`
}

func newDocumentResponse(d *model.Document) documentResponse {
	return documentResponse{Document: d, Date: d.Date.Format(dateLayout)}
}

// ListDocuments godoc
//
//	@Summary	List documents
//	@Tags		documents
//	@Produce	json
//	@Security	BearerAuth
//	@Param		department_id		query		string	false	"department"
//	@Param		document_type_id	query		string	false	"document type"
//	@Param		q					query		string	false	"title or number contains"
//	@Param		date_from			query		string	false	"YYYY-MM-DD, inclusive"
//	@Param		date_to				query		string	false	"YYYY-MM-DD, inclusive"
//	@Param		limit				query		int		false	"page size"	default(10)
//	@Param		offset				query		int		false	"page offset"	default(0)
//	@Success	200					{object}	listResponse[documentResponse]
//	@Failure	400					{object}	errorPayload
//	@Router		/api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		q := service.DocumentQuery{Search: c.Query("q"), Limit: limit, Offset: offset}
		if q.DepartmentID, err = optionalID(c, "department_id"); err != nil {
			return fail(c, err)
		}
		if q.DocumentTypeID, err = optionalID(c, "document_type_id"); err != nil {
			return fail(c, err)
		}
		if q.DateFrom, err = optionalDate(c, "date_from"); err != nil {
			return fail(c, err)
		}
		if q.DateTo, err = optionalDate(c, "date_to"); err != nil {
			return fail(c, err)
		}

		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return fail(c, err)
		}

		out := listResponse[documentResponse]{Data: make([]documentResponse, 0, len(res.Items)), Total: res.Total}
		for i := range res.Items {
			out.Data = append(out.Data, newDocumentResponse(&res.Items[i]))
		}
		return c.JSON(out)
	}
}

// CreateDocument godoc
//
//	@Summary	Create a document
//	@Tags		documents
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		documentRequest	true	"document"
//	@Success	201		{object}	documentResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/documents [post]
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req documentRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		d, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newDocumentResponse(d))
	}
}

// GetDocument godoc
//
//	@Summary	Get a document
//	@Tags		documents
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"document id"
//	@Success	200	{object}	documentResponse
//	@Failure	404	{object}	errorPayload
//	@Router		/api/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		d, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newDocumentResponse(d))
	}
}

// UpdateDocument godoc
//
//	@Summary	Update a document
//	@Tags		documents
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"document id"
//	@Param		body	body		documentRequest	true	"document"
//	@Success	200		{object}	documentResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/api/documents/{id} [put]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var req documentRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		d, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newDocumentResponse(d))
	}
}

// DeleteDocument godoc
//
//	@Summary	Delete a document and its files
//	@Tags		documents
//	@Security	BearerAuth
//	@Param		id	path	string	true	"document id"
//	@Success	204
//	@Failure	404	{object}	errorPayload
//	@Router		/api/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
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
