package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// ProjectEditable represents all user configurable parameters
type ProjectEditable struct {
	Name    string    `json:"name" example:"Vendita torte" default:""`                // Name of the self-financing project
	GroupID uuid.UUID `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the group running the project
}

func (editable ProjectEditable) model() models.SelfFinancingProject {
	return models.SelfFinancingProject{
		Name:    editable.Name,
		GroupID: editable.GroupID,
	}
}

type ProjectLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/projects/3b1ea324-d438-4419-882a-2fc91d71772f"`                              // The project itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?selfFinancing=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions of this project
}

type Project struct {
	models.DefaultModel
	ProjectEditable
	Links ProjectLinks `json:"links"`
}

func newProject(c *gin.Context, model models.SelfFinancingProject) Project {
	url := c.GetString(string(models.DBContextURL))

	return Project{
		DefaultModel: model.DefaultModel,
		ProjectEditable: ProjectEditable{
			Name:    model.Name,
			GroupID: model.GroupID,
		},
		Links: ProjectLinks{
			Self:         fmt.Sprintf("%s/v1/projects/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?selfFinancing=%s", url, model.ID),
		},
	}
}

type ProjectListResponse struct {
	Data       []Project   `json:"data"`                                                          // List of projects
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ProjectCreateResponse struct {
	Data  []ProjectResponse `json:"data"`                                                          // List of the created projects or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ProjectCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ProjectResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ProjectResponse struct {
	Data  *Project `json:"data"`                                                          // Data for the project
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ProjectQueryFilter struct {
	GroupID string `form:"group"`                      // By ID of the group
	Name    string `form:"name" filterField:"false"`   // By name
	Offset  uint   `form:"offset" filterField:"false"` // The offset of the first project returned. Defaults to 0.
	Limit   int    `form:"limit" filterField:"false"`  // Maximum number of projects to return. Defaults to 50.
}

func (f ProjectQueryFilter) model() (models.SelfFinancingProject, error) {
	groupID, err := httputil.UUIDFromString(f.GroupID)
	if err != nil {
		return models.SelfFinancingProject{}, err
	}

	return models.SelfFinancingProject{
		GroupID: groupID,
	}, nil
}

// RegisterProjectRoutes registers the routes for self-financing projects
// with the RouterGroup that is passed.
func RegisterProjectRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsProjectList)
		r.GET("", GetProjects)
		r.POST("", guard(auth.CanManageAutofinanziamenti), CreateProjects)
	}

	// Project with ID
	{
		r.OPTIONS("/:id", OptionsProjectDetail)
		r.GET("/:id", GetProject)
		r.PATCH("/:id", guard(auth.CanManageAutofinanziamenti), UpdateProject)
		r.DELETE("/:id", guard(auth.CanManageAutofinanziamenti), DeleteProject)
	}
}

// OptionsProjectList returns the allowed HTTP methods.
func OptionsProjectList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsProjectDetail returns the allowed HTTP methods for a specific
// project.
func OptionsProjectDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SelfFinancingProject{})
}

// CreateProjects creates new self-financing projects.
func CreateProjects(c *gin.Context) {
	var projects []ProjectEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &projects)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ProjectCreateResponse{}

	for _, editable := range projects {
		project := editable.model()

		err := models.DB.Create(&project).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newProject(c, project)
		r.Data = append(r.Data, ProjectResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetProjects returns a list of self-financing projects.
func GetProjects(c *gin.Context) {
	var filter ProjectQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	var projects []models.SelfFinancingProject

	// Always sort by name
	q := models.DB.
		Order("name ASC").
		Where(model, queryFields...)

	q = nameFilter(q, setFields, filter.Name)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all projects and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err = q.Find(&projects).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ProjectListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Project, 0)
	for _, project := range projects {
		apiResources = append(apiResources, newProject(c, project))
	}

	c.JSON(http.StatusOK, ProjectListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetProject returns a specific self-financing project.
func GetProject(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	var project models.SelfFinancingProject
	err = models.DB.First(&project, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	apiResource := newProject(c, project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &apiResource})
}

// UpdateProject updates an existing self-financing project.
func UpdateProject(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	var project models.SelfFinancingProject
	err = models.DB.First(&project, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	// Prefill the editable so that only the fields from the body change
	data := ProjectEditable{
		Name:    project.Name,
		GroupID: project.GroupID,
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	merged := data.model()
	merged.DefaultModel = project.DefaultModel
	project = merged

	err = models.DB.Save(&project).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ProjectResponse{
			Error: &s,
		})
		return
	}

	apiResource := newProject(c, project)
	c.JSON(http.StatusOK, ProjectResponse{Data: &apiResource})
}

// DeleteProject deletes a self-financing project. Its transactions are kept
// and unlinked.
func DeleteProject(c *gin.Context) {
	deleteResource[models.SelfFinancingProject](c)
}
