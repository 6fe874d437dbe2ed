package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// UnitEditable represents all user configurable parameters
type UnitEditable struct {
	Name string `json:"name" example:"Gabbiani" default:""` // Name of the unit
}

func (editable UnitEditable) model() models.Unit {
	return models.Unit{
		Name: editable.Name,
	}
}

type UnitLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/units/3b1ea324-d438-4419-882a-2fc91d71772f"` // The unit itself
}

type Unit struct {
	models.DefaultModel
	UnitEditable
	Links UnitLinks `json:"links"`
}

func newUnit(c *gin.Context, model models.Unit) Unit {
	url := c.GetString(string(models.DBContextURL))

	return Unit{
		DefaultModel: model.DefaultModel,
		UnitEditable: UnitEditable{
			Name: model.Name,
		},
		Links: UnitLinks{
			Self: fmt.Sprintf("%s/v1/units/%s", url, model.ID),
		},
	}
}

type UnitListResponse struct {
	Data       []Unit      `json:"data"`                                                          // List of units
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UnitCreateResponse struct {
	Data  []UnitResponse `json:"data"`                                                          // List of the created units or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *UnitCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, UnitResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UnitResponse struct {
	Data  *Unit   `json:"data"`                                                          // Data for the unit
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UnitQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first unit returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of units to return. Defaults to 50.
}

// RegisterUnitRoutes registers the routes for units with
// the RouterGroup that is passed.
func RegisterUnitRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsUnitList)
		r.GET("", GetUnits)
		r.POST("", CreateUnits)
	}

	// Unit with ID
	{
		r.OPTIONS("/:id", OptionsUnitDetail)
		r.GET("/:id", GetUnit)
		r.PATCH("/:id", UpdateUnit)
		r.DELETE("/:id", DeleteUnit)
	}
}

// OptionsUnitList returns the allowed HTTP methods.
func OptionsUnitList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsUnitDetail returns the allowed HTTP methods for a specific unit.
func OptionsUnitDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Unit{})
}

// CreateUnits creates new units.
func CreateUnits(c *gin.Context) {
	var units []UnitEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &units)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := UnitCreateResponse{}

	for _, editable := range units {
		unit := editable.model()

		err := models.DB.Create(&unit).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newUnit(c, unit)
		r.Data = append(r.Data, UnitResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetUnits returns a list of units.
func GetUnits(c *gin.Context) {
	var filter UnitQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var units []models.Unit

	// Always sort by name
	q := models.DB.Order("name ASC")
	q = nameFilter(q, setFields, filter.Name)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all units and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&units).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UnitListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Unit, 0)
	for _, unit := range units {
		apiResources = append(apiResources, newUnit(c, unit))
	}

	c.JSON(http.StatusOK, UnitListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetUnit returns a specific unit.
func GetUnit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	var unit models.Unit
	err = models.DB.First(&unit, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	apiResource := newUnit(c, unit)
	c.JSON(http.StatusOK, UnitResponse{Data: &apiResource})
}

// UpdateUnit updates an existing unit.
func UpdateUnit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	var unit models.Unit
	err = models.DB.First(&unit, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	// Prefill the editable so that only the fields from the body change
	data := UnitEditable{
		Name: unit.Name,
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	merged := data.model()
	merged.DefaultModel = unit.DefaultModel
	unit = merged

	err = models.DB.Save(&unit).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UnitResponse{
			Error: &s,
		})
		return
	}

	apiResource := newUnit(c, unit)
	c.JSON(http.StatusOK, UnitResponse{Data: &apiResource})
}

// DeleteUnit deletes a unit. Members keep their unit label.
func DeleteUnit(c *gin.Context) {
	deleteResource[models.Unit](c)
}
