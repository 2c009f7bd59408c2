package controllers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"realty/config"
	"realty/dto"
	"realty/errors"
	"realty/response"
	"realty/services"
	"realty/validator"
)

// ObjectController serves the property catalog views: paginated and
// filtered lists, detail, and the admin create/update/delete forms.
type ObjectController struct {
	catalog *services.CatalogService
	rdb     *redis.Client
}

func NewObjectController(catalog *services.CatalogService, rdb *redis.Client) *ObjectController {
	return &ObjectController{
		catalog: catalog,
		rdb:     rdb,
	}
}

func parseUintQuery(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	value := uint(parsed)
	return &value
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePageSize(c *gin.Context, fallback int) int {
	size, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil || size < 1 {
		return fallback
	}
	return size
}

// GetObjects is the admin list: status filter visible, fuzzy street
// search, filters remembered per session so a page change repeats them.
func (ctl *ObjectController) GetObjects(c *gin.Context) {
	sessionID := c.GetString("sessionId")
	page := parsePage(c)

	if query := c.Query("search"); query != "" {
		matches := ctl.catalog.SearchByStreet(query)
		response.Success(c, matches)
		return
	}

	filters := dto.ObjectFilters{
		ObjectTypeID: parseUintQuery(c, "typeId"),
		DealTypeID:   parseUintQuery(c, "dealTypeId"),
		StatusID:     parseUintQuery(c, "statusId"),
	}

	if c.Query("reset") == "true" {
		services.ClearLastFilters(config.Ctx, ctl.rdb, sessionID)
		filters = dto.ObjectFilters{}
		page = 1
	} else if last, err := services.GetLastFilters(config.Ctx, ctl.rdb, sessionID); err == nil && last != nil {
		filters = *services.MergeFilters(last, &filters)
	}

	var err error
	if filters.Empty() {
		err = ctl.catalog.FetchPaginated(c.Request.Context(), page, parsePageSize(c, ctl.catalog.PageSize()))
	} else {
		services.SaveLastFilters(config.Ctx, ctl.rdb, sessionID, &filters)
		err = ctl.catalog.FetchFiltered(c.Request.Context(), filters, page)
	}
	if err != nil {
		response.ServerError(c)
		return
	}

	paging := ctl.catalog.Pagination()
	response.SuccessWithPagination(c, ctl.catalog.Objects(),
		paging.Page, paging.PageSize, paging.Total, paging.TotalPages)
}

// GetObjectsForUser is the regular-user list: same paginated view but
// without the admin-only status filter.
func (ctl *ObjectController) GetObjectsForUser(c *gin.Context) {
	page := parsePage(c)

	filters := dto.ObjectFilters{
		ObjectTypeID: parseUintQuery(c, "typeId"),
		DealTypeID:   parseUintQuery(c, "dealTypeId"),
	}

	var err error
	if filters.Empty() {
		err = ctl.catalog.FetchPaginated(c.Request.Context(), page, parsePageSize(c, ctl.catalog.PageSize()))
	} else {
		err = ctl.catalog.FetchFiltered(c.Request.Context(), filters, page)
	}
	if err != nil {
		response.ServerError(c)
		return
	}

	paging := ctl.catalog.Pagination()
	response.SuccessWithPagination(c, ctl.catalog.Objects(),
		paging.Page, paging.PageSize, paging.Total, paging.TotalPages)
}

func (ctl *ObjectController) GetObjectDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid object id")
		return
	}

	object, err := ctl.catalog.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeBackendNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, object)
}

// objectRequestFromForm reads the multipart form fields into a request.
func objectRequestFromForm(c *gin.Context) (dto.REObjectRequest, error) {
	var req dto.REObjectRequest
	var err error

	if req.Rooms, err = strconv.Atoi(c.PostForm("rooms")); err != nil {
		return req, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid rooms value", err)
	}
	if req.Floors, err = strconv.Atoi(c.PostForm("floors")); err != nil {
		return req, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid floors value", err)
	}
	if req.Square, err = strconv.ParseFloat(c.PostForm("square"), 64); err != nil {
		return req, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid square value", err)
	}
	if req.Building, err = strconv.Atoi(c.PostForm("building")); err != nil {
		return req, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid building value", err)
	}
	if req.Price, err = strconv.Atoi(c.PostForm("price")); err != nil {
		return req, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid price value", err)
	}
	req.Street = c.PostForm("street")

	if raw := c.PostForm("roomnum"); raw != "" {
		roomNum, err := strconv.Atoi(raw)
		if err != nil {
			return req, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid unit number", err)
		}
		req.RoomNum = &roomNum
	}

	parseRef := func(name string) (uint, error) {
		value, err := strconv.ParseUint(c.PostForm(name), 10, 32)
		if err != nil {
			return 0, errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid "+name, err)
		}
		return uint(value), nil
	}
	if req.DealTypeID, err = parseRef("dealTypeId"); err != nil {
		return req, err
	}
	if req.ObjectTypeID, err = parseRef("objectTypeId"); err != nil {
		return req, err
	}
	if req.StatusID, err = parseRef("statusId"); err != nil {
		return req, err
	}

	return req, nil
}

func uploadsFromForm(c *gin.Context) ([]dto.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var uploads []dto.Upload
	for _, header := range form.File["files"] {
		src, err := header.Open()
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "cannot open uploaded file", err)
		}
		uploads = append(uploads, dto.Upload{
			FileName: header.Filename,
			Content:  src,
		})
	}
	return uploads, nil
}

// closeUploads releases the file handles once the form has been
// forwarded to the backend.
func closeUploads(uploads []dto.Upload) {
	for _, upload := range uploads {
		if closer, ok := upload.Content.(io.Closer); ok {
			closer.Close()
		}
	}
}

// CreateObject accepts the admin create form: scalar fields plus
// optional image files, all forwarded multipart to the backend.
func (ctl *ObjectController) CreateObject(c *gin.Context) {
	req, err := objectRequestFromForm(c)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if err := validator.ValidateREObject(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	files, err := uploadsFromForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer closeUploads(files)

	created, err := ctl.catalog.Create(c.Request.Context(), c.GetString("token"), req, files)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, created)
}

// UpdateObject accepts the admin edit form; imagesToDelete ids are
// repeated form fields.
func (ctl *ObjectController) UpdateObject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid object id")
		return
	}

	req, err := objectRequestFromForm(c)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if err := validator.ValidateREObject(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	files, err := uploadsFromForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer closeUploads(files)

	var imagesToDelete []uint
	for _, raw := range c.PostFormArray("imagesToDelete") {
		imageID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid image id in imagesToDelete")
			return
		}
		imagesToDelete = append(imagesToDelete, uint(imageID))
	}

	updated, err := ctl.catalog.Update(c.Request.Context(), c.GetString("token"), uint(id), req, files, imagesToDelete)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, updated)
}

func (ctl *ObjectController) DeleteObject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid object id")
		return
	}

	if err := ctl.catalog.Delete(c.Request.Context(), c.GetString("token"), uint(id)); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// GetCatalog serves the reference tables used for dropdowns and
// id-to-label resolution.
func (ctl *ObjectController) GetCatalog(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		data interface{}
		err  error
	)

	switch c.Param("kind") {
	case "dealtypes":
		data, err = ctl.catalog.DealTypes(ctx)
	case "objecttypes":
		data, err = ctl.catalog.ObjectTypes(ctx)
	case "statuses":
		data, err = ctl.catalog.Statuses(ctx)
	case "resstatuses":
		data, err = ctl.catalog.ResStatuses(ctx)
	default:
		response.NotFound(c)
		return
	}
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, data)
}
