package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// RegisterGroupRoutes registers the routes for groups with
// the RouterGroup that is passed.
func RegisterGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGroupList)
		r.GET("", GetGroups)
		r.POST("", guardAdmin(), CreateGroups)
	}

	// Group with ID
	{
		r.OPTIONS("/:id", OptionsGroupDetail)
		r.GET("/:id", GetGroup)
		r.PATCH("/:id", guardAdmin(), UpdateGroup)
		r.DELETE("/:id", guardAdmin(), DeleteGroup)
	}
}

// OptionsGroupList returns the allowed HTTP methods.
func OptionsGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsGroupDetail returns the allowed HTTP methods for a specific group.
func OptionsGroupDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Group{})
}

// CreateGroups creates new groups.
func CreateGroups(c *gin.Context) {
	var groups []GroupEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &groups)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GroupCreateResponse{}

	for _, editable := range groups {
		group := editable.model()

		err := models.DB.Create(&group).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newGroup(c, group)
		r.Data = append(r.Data, GroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetGroups returns a list of groups.
func GetGroups(c *gin.Context) {
	var filter GroupQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var groups []models.Group

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(filter.model(), queryFields...)

	q = nameFilter(q, setFields, filter.Name)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all groups and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Group, 0)
	for _, group := range groups {
		apiResources = append(apiResources, newGroup(c, group))
	}

	c.JSON(http.StatusOK, GroupListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetGroup returns a specific group.
func GetGroup(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	apiResource := newGroup(c, group)
	c.JSON(http.StatusOK, GroupResponse{Data: &apiResource})
}

// UpdateGroup updates an existing group. Only values to be updated need to
// be specified. The quote settings are replaced as a whole when present in
// the body.
func UpdateGroup(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	// Prefill the editable with the stored values so that fields missing
	// from the body stay untouched. This also covers the embedded quote
	// settings, which gorm cannot patch field-selectively.
	data := GroupEditable{
		Name:          group.Name,
		Color:         group.Color,
		QuoteSettings: group.QuoteSettings,
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	group.Name = data.Name
	group.Color = data.Color
	group.QuoteSettings = data.QuoteSettings

	err = models.DB.Save(&group).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	apiResource := newGroup(c, group)
	c.JSON(http.StatusOK, GroupResponse{Data: &apiResource})
}

// DeleteGroup deletes a group. Groups that still have members or
// transactions and the last remaining group cannot be deleted.
func DeleteGroup(c *gin.Context) {
	deleteResource[models.Group](c)
}
