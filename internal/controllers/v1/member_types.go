package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// MemberEditable represents all user configurable parameters
type MemberEditable struct {
	GroupID  uuid.UUID       `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the group the member belongs to
	Name     string          `json:"name" example:"Gaia Rossi" default:""`                   // Name of the member
	Unit     string          `json:"unit" example:"Gabbiani" default:""`                     // Unit the member is associated with
	Siblings models.Siblings `json:"siblings" example:"2" default:"0"`                       // Sibling-count bucket for installment discounts
}

func (editable MemberEditable) model() models.Member {
	return models.Member{
		GroupID:  editable.GroupID,
		Name:     editable.Name,
		Unit:     editable.Unit,
		Siblings: editable.Siblings,
	}
}

// MemberInstallment is one installment slot of a member as returned by the API.
type MemberInstallment struct {
	Slot          models.Slot          `json:"slot" example:"first"`           // The installment slot
	Amount        decimal.Decimal      `json:"amount" example:"120"`           // The amount paid, zero when unpaid
	Date          *time.Time           `json:"date"`                           // The payment date, null when unpaid
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"CASH"`   // The payment method, empty when unpaid
	Allocations   models.Allocation    `json:"allocations"`                    // The fixed fees this payment covers
}

func newMemberInstallment(model models.Installment) MemberInstallment {
	return MemberInstallment{
		Slot:          model.Slot,
		Amount:        model.Amount,
		Date:          model.Date,
		PaymentMethod: model.PaymentMethod,
		Allocations:   model.Allocation,
	}
}

type MemberLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/members/d1079f1b-9ce9-4d8e-8a31-bebbbb1d0d96"`        // The member itself
	Group string `json:"group" example:"https://example.com/api/v1/groups/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`        // The group of this member
}

type Member struct {
	models.DefaultModel
	MemberEditable
	Installments []MemberInstallment `json:"installments"` // The four installment slots of the member
	Links        MemberLinks         `json:"links"`
}

func newMember(c *gin.Context, model models.Member) Member {
	url := c.GetString(string(models.DBContextURL))

	member := Member{
		DefaultModel: model.DefaultModel,
		MemberEditable: MemberEditable{
			GroupID:  model.GroupID,
			Name:     model.Name,
			Unit:     model.Unit,
			Siblings: model.Siblings,
		},
		Links: MemberLinks{
			Self:  fmt.Sprintf("%s/v1/members/%s", url, model.ID),
			Group: fmt.Sprintf("%s/v1/groups/%s", url, model.GroupID),
		},
	}

	// Keep the canonical slot order regardless of insertion order
	for _, slot := range models.Slots {
		if inst, ok := model.Installment(slot); ok {
			member.Installments = append(member.Installments, newMemberInstallment(inst))
		}
	}

	return member
}

type MemberListResponse struct {
	Data       []Member    `json:"data"`                                                          // List of members
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MemberCreateResponse struct {
	Data  []MemberResponse `json:"data"`                                                          // List of the created members or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MemberCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MemberResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MemberResponse struct {
	Data  *Member `json:"data"`                                                          // Data for the member
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// InstallmentEditable is the payment update for one installment slot.
type InstallmentEditable struct {
	Amount        decimal.Decimal      `json:"amount" example:"120"`         // The amount paid, zero clears the slot
	Date          *time.Time           `json:"date"`                         // The payment date
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"CASH"` // The payment method
	Allocations   *models.Allocation   `json:"allocations"`                  // Fee selection for partial first-installment payments
}

type InstallmentResponse struct {
	Data  *MemberInstallment `json:"data"`                                                       // Data for the installment
	Error *string            `json:"error" example:"the specified installment slot is invalid"` // The error, if any occurred
}

type SuggestionObject struct {
	Amount decimal.Decimal `json:"amount" example:"96"` // The amount to prefill for the slot
}

type SuggestionResponse struct {
	Data  *SuggestionObject `json:"data"`                                                       // The suggestion
	Error *string           `json:"error" example:"the specified installment slot is invalid"` // The error, if any occurred
}

type MemberQueryFilter struct {
	GroupID  string `form:"group"`                      // By ID of the group
	Name     string `form:"name" filterField:"false"`   // By name
	Unit     string `form:"unit"`                       // By unit
	Siblings string `form:"siblings"`                   // By sibling-count bucket
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first member returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of members to return. Defaults to 50.
}

func (f MemberQueryFilter) model() (models.Member, error) {
	groupID, err := httputil.UUIDFromString(f.GroupID)
	if err != nil {
		return models.Member{}, err
	}

	return models.Member{
		GroupID:  groupID,
		Unit:     f.Unit,
		Siblings: models.Siblings(f.Siblings),
	}, nil
}
