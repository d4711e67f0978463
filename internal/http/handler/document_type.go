package handler

import (
	"github.com/gofiber/fiber/v2"

	"netbelge/internal/model"
	"netbelge/internal/service"
)

type documentTypeRequest struct {
	DepartmentID string `json:"department_id" validate:"required,uuid4"`
	Name         string `json:"name" validate:"required,max=50"`
	Path         string `json:"path" validate:"required,max=255"`
	Description  string `json:"description"`
}

func (r documentTypeRequest) input() service.DocumentTypeInput {
	return service.DocumentTypeInput{
		DepartmentID: r.DepartmentID,
		Name:         r.Name,
		Path:         r.Path,
		Description:  r.Description,
	}
}

type documentTypeResponse struct {
	*model.DocumentType
	FullPath string `json:"full_path"`
}

func newDocumentTypeResponse(t *model.DocumentType) documentTypeResponse {
	return documentTypeResponse{DocumentType: t, FullPath: t.FullPath()}
}

type sectionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

func (r sectionRequest) input() service.SectionInput {
	return service.SectionInput{Name: r.Name, Description: r.Description}
}

// ListDocumentTypes godoc
//
//	@Summary	List document types
//	@Tags		document-types
//	@Produce	json
//	@Security	BearerAuth
//	@Param		department_id	query		string	false	"owning department"
//	@Param		q				query		string	false	"name contains"
//	@Param		limit			query		int		false	"page size"	default(10)
//	@Param		offset			query		int		false	"page offset"	default(0)
//	@Success	200				{object}	listResponse[documentTypeResponse]
//	@Router		/api/document-types [get]
func ListDocumentTypes(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		departmentID, err := optionalID(c, "department_id")
		if err != nil {
			return fail(c, err)
		}

		res, err := svc.List(c.UserContext(), service.DocumentTypeQuery{
			DepartmentID: departmentID,
			Search:       c.Query("q"),
			Limit:        limit,
			Offset:       offset,
		})
		if err != nil {
			return fail(c, err)
		}

		out := listResponse[documentTypeResponse]{Data: make([]documentTypeResponse, 0, len(res.Items)), Total: res.Total}
		for i := range res.Items {
			out.Data = append(out.Data, newDocumentTypeResponse(&res.Items[i]))
		}
		return c.JSON(out)
	}
}

// CreateDocumentType godoc
//
//	@Summary	Create a document type
//	@Tags		document-types
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		documentTypeRequest	true	"document type"
//	@Success	201		{object}	documentTypeResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/document-types [post]
func CreateDocumentType(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req documentTypeRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		t, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newDocumentTypeResponse(t))
	}
}

// GetDocumentType godoc
//
//	@Summary	Get a document type
//	@Tags		document-types
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"document type id"
//	@Success	200	{object}	documentTypeResponse
//	@Failure	404	{object}	errorPayload
//	@Router		/api/document-types/{id} [get]
func GetDocumentType(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		t, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newDocumentTypeResponse(t))
	}
}

// UpdateDocumentType godoc
//
//	@Summary	Update a document type
//	@Tags		document-types
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"document type id"
//	@Param		body	body		documentTypeRequest	true	"document type"
//	@Success	200		{object}	documentTypeResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/api/document-types/{id} [put]
func UpdateDocumentType(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var req documentTypeRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		t, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newDocumentTypeResponse(t))
	}
}

// DeleteDocumentType godoc
//
//	@Summary	Delete a document type with its documents and files
//	@Tags		document-types
//	@Security	BearerAuth
//	@Param		id	path	string	true	"document type id"
//	@Success	204
//	@Failure	404	{object}	errorPayload
//	@Router		/api/document-types/{id} [delete]
func DeleteDocumentType(svc service.DocumentTypeService) fiber.Handler {
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

// ListSections godoc
//
//	@Summary	List the sections of a document type
//	@Tags		document-types
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"document type id"
//	@Success	200	{array}	model.DocumentSection
//	@Router		/api/document-types/{id}/sections [get]
func ListSections(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		sections, err := svc.ListSections(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		if sections == nil {
			sections = []model.DocumentSection{}
		}
		return c.JSON(sections)
	}
}

// AddSection godoc
//
//	@Summary	Add a section to a document type
//	@Tags		document-types
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"document type id"
//	@Param		body	body		sectionRequest	true	"section"
//	@Success	201		{object}	model.DocumentSection
//	@Failure	409		{object}	errorPayload
//	@Router		/api/document-types/{id}/sections [post]
func AddSection(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var req sectionRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		s, err := svc.AddSection(c.UserContext(), id, req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// UpdateSection godoc
//
//	@Summary	Update a section
//	@Tags		document-types
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"section id"
//	@Param		body	body		sectionRequest	true	"section"
//	@Success	200		{object}	model.DocumentSection
//	@Router		/api/document-sections/{id} [put]
func UpdateSection(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var req sectionRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		s, err := svc.UpdateSection(c.UserContext(), id, req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(s)
	}
}

// DeleteSection godoc
//
//	@Summary	Delete a section
//	@Tags		document-types
//	@Security	BearerAuth
//	@Param		id	path	string	true	"section id"
//	@Success	204
//	@Router		/api/document-sections/{id} [delete]
func DeleteSection(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		if err := svc.DeleteSection(c.UserContext(), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
