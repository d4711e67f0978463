package handler

import (
	"github.com/gofiber/fiber/v2"

	"netbelge/internal/model"
	"netbelge/internal/service"
)

type departmentRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid4"`
	Description string  `json:"description"`
}

func (r departmentRequest) input() service.DepartmentInput {
	return service.DepartmentInput{Name: r.Name, ParentID: r.ParentID, Description: r.Description}
}

type departmentResponse struct {
	*model.Department
	FullPath string `json:"full_path"`
}

func newDepartmentResponse(d *model.Department) departmentResponse {
	return departmentResponse{Department: d, FullPath: d.FullPath()}
}

// ListDepartments godoc
//
//	@Summary	List departments
//	@Tags		departments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		parent_id	query		string	false	"direct children of this department"
//	@Param		roots		query		bool	false	"only top-level departments"
//	@Param		q			query		string	false	"name contains"
//	@Param		limit		query		int		false	"page size"	default(10)
//	@Param		offset		query		int		false	"page offset"	default(0)
//	@Success	200			{object}	listResponse[departmentResponse]
//	@Router		/api/departments [get]
func ListDepartments(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return fail(c, err)
		}
		parentID, err := optionalID(c, "parent_id")
		if err != nil {
			return fail(c, err)
		}

		q := service.DepartmentQuery{
			RootsOnly: c.QueryBool("roots"),
			Search:    c.Query("q"),
			Limit:     limit,
			Offset:    offset,
		}
		if parentID != "" {
			q.ParentID = &parentID
		}

		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return fail(c, err)
		}

		out := listResponse[departmentResponse]{Data: make([]departmentResponse, 0, len(res.Items)), Total: res.Total}
		for i := range res.Items {
			out.Data = append(out.Data, newDepartmentResponse(&res.Items[i]))
		}
		return c.JSON(out)
	}
}

// DepartmentTree godoc
//
//	@Summary	Department forest
//	@Tags		departments
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	model.DepartmentNode
//	@Router		/api/departments/tree [get]
func DepartmentTree(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nodes, err := svc.Tree(c.UserContext())
		if err != nil {
			return fail(c, err)
		}
		if nodes == nil {
			nodes = []*model.DepartmentNode{}
		}
		return c.JSON(nodes)
	}
}

// CreateDepartment godoc
//
//	@Summary	Create a department
//	@Tags		departments
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		departmentRequest	true	"department"
//	@Success	201		{object}	departmentResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/departments [post]
func CreateDepartment(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req departmentRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		d, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newDepartmentResponse(d))
	}
}

// GetDepartment godoc
//
//	@Summary	Get a department
//	@Tags		departments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"department id"
//	@Success	200	{object}	departmentResponse
//	@Failure	404	{object}	errorPayload
//	@Router		/api/departments/{id} [get]
func GetDepartment(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		d, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newDepartmentResponse(d))
	}
}

// UpdateDepartment renames and/or moves a department. Moving it under one of
// its own descendants answers 400 DEPARTMENT_CYCLE.
//
//	@Summary	Update a department
//	@Tags		departments
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"department id"
//	@Param		body	body		departmentRequest	true	"department"
//	@Success	200		{object}	departmentResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	404		{object}	errorPayload
//	@Router		/api/departments/{id} [put]
func UpdateDepartment(svc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return fail(c, err)
		}
		var req departmentRequest
		if err := bind(c, &req); err != nil {
			return fail(c, err)
		}
		d, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(newDepartmentResponse(d))
	}
}

// DeleteDepartment godoc
//
//	@Summary	Delete a department and everything under it
//	@Tags		departments
//	@Security	BearerAuth
//	@Param		id	path	string	true	"department id"
//	@Success	204
//	@Failure	404	{object}	errorPayload
//	@Router		/api/departments/{id} [delete]
func DeleteDepartment(svc service.DepartmentService) fiber.Handler {
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
