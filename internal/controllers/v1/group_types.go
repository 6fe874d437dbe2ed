package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/models"
)

// GroupEditable represents all user configurable parameters
type GroupEditable struct {
	Name          string               `json:"name" example:"Branco" default:""`   // Name of the group
	Color         string               `json:"color" example:"#f59e0b" default:""` // Display color of the group
	QuoteSettings models.QuoteSettings `json:"quoteSettings"`                      // Fee schedule of the group
}

func (editable GroupEditable) model() models.Group {
	return models.Group{
		Name:          editable.Name,
		Color:         editable.Color,
		QuoteSettings: editable.QuoteSettings,
	}
}

type GroupLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/groups/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The group itself
	Members      string `json:"members" example:"https://example.com/api/v1/members?group=3b1ea324-d438-4419-882a-2fc91d71772f"`            // Members of this group
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?group=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions of this group
}

type Group struct {
	models.DefaultModel
	GroupEditable
	Links GroupLinks `json:"links"`
}

func newGroup(c *gin.Context, model models.Group) Group {
	url := c.GetString(string(models.DBContextURL))

	return Group{
		DefaultModel: model.DefaultModel,
		GroupEditable: GroupEditable{
			Name:          model.Name,
			Color:         model.Color,
			QuoteSettings: model.QuoteSettings,
		},
		Links: GroupLinks{
			Self:         fmt.Sprintf("%s/v1/groups/%s", url, model.ID),
			Members:      fmt.Sprintf("%s/v1/members?group=%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?group=%s", url, model.ID),
		},
	}
}

type GroupListResponse struct {
	Data       []Group     `json:"data"`                                                          // List of groups
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GroupCreateResponse struct {
	Data  []GroupResponse `json:"data"`                                                          // List of the created groups or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GroupResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GroupResponse struct {
	Data  *Group  `json:"data"`                                                          // Data for the group
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first group returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of groups to return. Defaults to 50.
}

func (f GroupQueryFilter) model() models.Group {
	return models.Group{}
}
