package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
	"github.com/scoutcassa/backend/internal/quota"
)

// RegisterMemberRoutes registers the routes for members with
// the RouterGroup that is passed.
func RegisterMemberRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMemberList)
		r.GET("", GetMembers)
		r.POST("", guard(auth.CanEditMembers), CreateMembers)
	}

	// Member with ID
	{
		r.OPTIONS("/:id", OptionsMemberDetail)
		r.GET("/:id", GetMember)
		r.PATCH("/:id", guard(auth.CanEditMembers), UpdateMember)
		r.DELETE("/:id", guard(auth.CanEditMembers), DeleteMember)
	}

	// Installment slots of a member
	{
		r.OPTIONS("/:id/installments/:slot", OptionsInstallment)
		r.PATCH("/:id/installments/:slot", guard(auth.CanEditInstallments), UpdateInstallment)
		r.GET("/:id/installments/:slot/suggestion", GetInstallmentSuggestion)
		r.OPTIONS("/:id/installments/:slot/suggestion", OptionsInstallmentSuggestion)
	}
}

// OptionsMemberList returns the allowed HTTP methods.
func OptionsMemberList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsMemberDetail returns the allowed HTTP methods for a specific member.
func OptionsMemberDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Member{})
}

// OptionsInstallment returns the allowed HTTP methods for an installment slot.
func OptionsInstallment(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// OptionsInstallmentSuggestion returns the allowed HTTP methods for an
// installment suggestion.
func OptionsInstallmentSuggestion(c *gin.Context) {
	httputil.OptionsGet(c)
}

// CreateMembers creates new members. Each member is created with its four
// unpaid installment slots.
func CreateMembers(c *gin.Context) {
	var members []MemberEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &members)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MemberCreateResponse{}

	for _, editable := range members {
		member := editable.model()

		err := models.DB.Create(&member).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// The installments are created by a hook, load them for the response
		err = models.DB.Preload("Installments").First(&member, member.ID).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newMember(c, member)
		r.Data = append(r.Data, MemberResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetMembers returns a list of members with their installments.
func GetMembers(c *gin.Context) {
	var filter MemberQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberListResponse{
			Error: &s,
		})
		return
	}

	var members []models.Member

	// Always sort by name
	q := models.DB.
		Preload("Installments").
		Order("name ASC").
		Where(model, queryFields...)

	q = nameFilter(q, setFields, filter.Name)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all members and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err = q.Find(&members).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MemberListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Member, 0)
	for _, member := range members {
		apiResources = append(apiResources, newMember(c, member))
	}

	c.JSON(http.StatusOK, MemberListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetMember returns a specific member with their installments.
func GetMember(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &s,
		})
		return
	}

	var member models.Member
	err = models.DB.Preload("Installments").First(&member, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &s,
		})
		return
	}

	apiResource := newMember(c, member)
	c.JSON(http.StatusOK, MemberResponse{Data: &apiResource})
}

// UpdateMember updates an existing member. Only values to be updated need
// to be specified. Installments are updated through their own endpoint.
func UpdateMember(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &s,
		})
		return
	}

	var member models.Member
	err = models.DB.First(&member, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &s,
		})
		return
	}

	// Prefill the editable with the stored values so that fields missing
	// from the body stay untouched. Saving the merged resource runs the
	// model hooks on the merged state.
	data := MemberEditable{
		GroupID:  member.GroupID,
		Name:     member.Name,
		Unit:     member.Unit,
		Siblings: member.Siblings,
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &s,
		})
		return
	}

	merged := data.model()
	merged.DefaultModel = member.DefaultModel
	member = merged

	err = models.DB.Save(&member).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Preload("Installments").First(&member, member.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MemberResponse{
			Error: &s,
		})
		return
	}

	apiResource := newMember(c, member)
	c.JSON(http.StatusOK, MemberResponse{Data: &apiResource})
}

// DeleteMember deletes a member together with their installments.
func DeleteMember(c *gin.Context) {
	deleteResource[models.Member](c)
}

// memberSlot loads the member, their group and the installment for the slot
// in the URI.
func memberSlot(c *gin.Context) (models.Member, models.Group, models.Installment, error) {
	id, err := parseID(c)
	if err != nil {
		return models.Member{}, models.Group{}, models.Installment{}, err
	}

	slot := models.Slot(c.Param("slot"))
	if !slot.Valid() {
		return models.Member{}, models.Group{}, models.Installment{}, errSlotInvalid
	}

	var member models.Member
	err = models.DB.First(&member, id).Error
	if err != nil {
		return models.Member{}, models.Group{}, models.Installment{}, err
	}

	var group models.Group
	err = models.DB.First(&group, member.GroupID).Error
	if err != nil {
		return models.Member{}, models.Group{}, models.Installment{}, err
	}

	var installment models.Installment
	err = models.DB.Where(&models.Installment{MemberID: member.ID, Slot: slot}).First(&installment).Error
	if err != nil {
		return models.Member{}, models.Group{}, models.Installment{}, err
	}

	return member, group, installment, nil
}

// GetInstallmentSuggestion returns the amount to prefill for an installment
// slot: paid slots echo their amount, an unpaid first installment suggests
// the base amount with the member's sibling discount applied.
func GetInstallmentSuggestion(c *gin.Context) {
	member, group, installment, err := memberSlot(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SuggestionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SuggestionResponse{
		Data: &SuggestionObject{
			Amount: quota.SuggestAmount(installment, member.Siblings, group.QuoteSettings),
		},
	})
}

// UpdateInstallment records, edits or clears the payment of an installment
// slot.
//
// For the first installment the fee allocation is resolved from the amount:
// a payment covering all fixed fees is allocated in full, a partial payment
// needs the allocations field. When the allocations field is missing, the
// stored allocation is re-validated against the new amount, so lowering a
// payment below its allocation is rejected until a new selection is sent.
func UpdateInstallment(c *gin.Context) {
	_, group, installment, err := memberSlot(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var data InstallmentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	allocation := models.Allocation{}
	if installment.Slot == models.SlotFirst {
		selected := data.Allocations
		if selected == nil && !installment.Allocation.None() {
			selected = &installment.Allocation
		}

		allocation, err = quota.Resolve(data.Amount, group.QuoteSettings, selected)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), InstallmentResponse{
				Error: &s,
			})
			return
		}
	}

	installment.Amount = data.Amount
	installment.Date = data.Date
	installment.PaymentMethod = data.PaymentMethod
	installment.Allocation = allocation

	err = models.DB.Save(&installment).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	apiResource := newMemberInstallment(installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &apiResource})
}
