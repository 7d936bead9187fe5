package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/services/scenario"
	"github.com/upb/wte-dashboard/backend/services/sites"
	"github.com/upb/wte-dashboard/backend/services/users"
	"github.com/upb/wte-dashboard/backend/services/waste"
	"github.com/upb/wte-dashboard/backend/utils"
)

func fieldErrors(t *testing.T, v interface{}) map[string]string {
	t.Helper()
	err := utils.ValidateStruct(v)
	require.Error(t, err)
	require.True(t, utils.IsValidationError(err), "got %T", err)
	return utils.GetValidationFields(err)
}

func TestValidateStruct_AssignRole(t *testing.T) {
	assert.NoError(t, utils.ValidateStruct(users.AssignRoleRequest{Role: "gis_planner"}))
	assert.NoError(t, utils.ValidateStruct(users.AssignRoleRequest{Role: "super_admin"}))

	fields := fieldErrors(t, users.AssignRoleRequest{Role: "root"})
	assert.Contains(t, fields["role"], "role must be one of")
	assert.Contains(t, fields["role"], "municipal_analyst")

	fields = fieldErrors(t, users.AssignRoleRequest{})
	assert.Equal(t, "role is required", fields["role"])
}

func TestValidateStruct_Site(t *testing.T) {
	valid := sites.CreateRequest{
		Name:         "Norte",
		LocationName: "Bello",
		Latitude:     6.33,
		Longitude:    -75.56,
		Capacity:     500,
		Technology:   "gasification",
		Status:       models.SiteStatusPlanned,
	}
	require.NoError(t, utils.ValidateStruct(valid))

	bad := valid
	bad.Name = ""
	bad.Latitude = 95
	bad.Status = "demolished"
	fields := fieldErrors(t, bad)
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "latitude must be a valid latitude", fields["latitude"])
	assert.Equal(t, "status must be a known site status", fields["status"])
	assert.Len(t, fields, 3)
}

func TestValidateStruct_Waste(t *testing.T) {
	req := waste.CreateRequest{
		Municipality:   "Medellín",
		WasteType:      "organic",
		Quantity:       -4,
		CollectionDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	fields := fieldErrors(t, req)
	assert.Equal(t, "quantity must not be below 0", fields["quantity"])

	req.Quantity = 12.5
	assert.NoError(t, utils.ValidateStruct(req))
}

func TestValidateStruct_Scenario(t *testing.T) {
	assert.NoError(t, utils.ValidateStruct(scenario.SaveRequest{Name: "baseline"}))

	fields := fieldErrors(t, scenario.SaveRequest{
		Input: scenario.Input{OrganicPercentage: 120, RecyclablePercentage: -5},
	})
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "organic_percentage must not exceed 100", fields["organic_percentage"])
	assert.Equal(t, "recyclable_percentage must not be below 0", fields["recyclable_percentage"])
}

func TestValidateStruct_StringLength(t *testing.T) {
	fields := fieldErrors(t, users.UpdateProfileRequest{Name: strings.Repeat("a", 201)})
	assert.Equal(t, "name must be at most 200 characters", fields["name"])
}

func TestValidateStruct_NotAStruct(t *testing.T) {
	err := utils.ValidateStruct(42)
	assert.Error(t, err)
	assert.False(t, utils.IsValidationError(err))
	assert.Nil(t, utils.GetValidationFields(err))
}
