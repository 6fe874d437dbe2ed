package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scoutcassa/backend/internal/httputil"
)

// Pagination contains information about the pagination for list endpoint responses.
type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

// parseID reads the id URI parameter.
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return id, nil
}
