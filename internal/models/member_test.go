package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutcassa/backend/internal/models"
)

// TestMemberInstallmentsCreated verifies that a new member starts with the
// four zero installments.
func (suite *TestSuiteStandard) TestMemberInstallmentsCreated() {
	group := suite.createTestGroup(models.Group{Name: "Reparto"})
	member := suite.createTestMember(models.Member{GroupID: group.ID, Name: "Gaia Rossi"})

	var reread models.Member
	require.Nil(suite.T(), models.DB.Preload("Installments").First(&reread, member.ID).Error)
	require.Len(suite.T(), reread.Installments, 4)

	for _, slot := range models.Slots {
		installment, ok := reread.Installment(slot)
		require.True(suite.T(), ok, "Missing installment for slot %s", slot)
		assert.True(suite.T(), installment.Amount.IsZero())
		assert.Nil(suite.T(), installment.Date)
	}

	_, ok := reread.Installment(models.Slot("fourth"))
	assert.False(suite.T(), ok)
}

// TestMemberRestoreKeepsInstallments verifies that members created with
// installments, e.g. from a backup, do not get additional zero slots.
func (suite *TestSuiteStandard) TestMemberRestoreKeepsInstallments() {
	group := suite.createTestGroup(models.Group{Name: "Reparto"})

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	member := suite.createTestMember(models.Member{
		GroupID: group.ID,
		Name:    "Gaia Rossi",
		Installments: []models.Installment{
			{Slot: models.SlotFirst, Amount: decimal.NewFromInt(120), Date: &date, PaymentMethod: models.PaymentMethodCash},
		},
	})

	var reread models.Member
	require.Nil(suite.T(), models.DB.Preload("Installments").First(&reread, member.ID).Error)
	assert.Len(suite.T(), reread.Installments, 1)
}

func (suite *TestSuiteStandard) TestMemberBeforeSave() {
	member := models.Member{Name: "  Gaia Rossi ", Unit: " Reparto "}

	require.Nil(suite.T(), member.BeforeSave(models.DB))
	assert.Equal(suite.T(), "Gaia Rossi", member.Name)
	assert.Equal(suite.T(), "Reparto", member.Unit)
	assert.Equal(suite.T(), models.SiblingsNone, member.Siblings, "The sibling bucket defaults to none")

	member.Siblings = models.Siblings("5")
	assert.ErrorIs(suite.T(), member.BeforeSave(models.DB), models.ErrSiblingsInvalid)
}

// TestMemberDeleteCascades verifies that deleting a member removes its
// installments with it.
func (suite *TestSuiteStandard) TestMemberDeleteCascades() {
	group := suite.createTestGroup(models.Group{Name: "Reparto"})
	member := suite.createTestMember(models.Member{GroupID: group.ID, Name: "Gaia Rossi"})

	require.Nil(suite.T(), models.DB.Unscoped().Delete(&member).Error)

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Installment{}).Where("member_id = ?", member.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)
}
