package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ollamachat/internal/models"
	"ollamachat/internal/services"
	"ollamachat/internal/tests/mocks"
)

func TestAppSettingsService_GetWindowGeometry_Defaults(t *testing.T) {
	service := services.NewAppSettingsService(&mocks.AppConfigRepositoryMock{})
	service.Startup(context.Background())

	g, err := service.GetWindowGeometry()
	require.NoError(t, err)
	assert.Equal(t, models.WindowGeometry{X: 100, Y: 100, Width: 1600, Height: 1440}, g)
}

func TestAppSettingsService_GetWindowGeometry_PerFieldFallback(t *testing.T) {
	config := &mocks.AppConfigRepositoryMock{Values: map[string]string{
		models.ConfigWindowX:      "40",
		models.ConfigWindowY:      "oops",
		models.ConfigWindowWidth:  "1200",
		models.ConfigWindowHeight: "",
	}}
	service := services.NewAppSettingsService(config)

	g, err := service.GetWindowGeometry()
	require.NoError(t, err)
	assert.Equal(t, models.WindowGeometry{X: 40, Y: 100, Width: 1200, Height: 600}, g)
}

func TestAppSettingsService_GetWindowGeometry_RepositoryError(t *testing.T) {
	config := &mocks.AppConfigRepositoryMock{
		GetFunc: func(ctx context.Context, key string) (string, bool, error) {
			return "", false, assert.AnError
		},
	}
	service := services.NewAppSettingsService(config)

	_, err := service.GetWindowGeometry()
	assert.ErrorIs(t, err, assert.AnError)
}

func TestAppSettingsService_SaveWindowGeometry(t *testing.T) {
	config := &mocks.AppConfigRepositoryMock{}
	service := services.NewAppSettingsService(config)

	require.NoError(t, service.SaveWindowGeometry(models.WindowGeometry{X: -20, Y: 5, Width: 900, Height: 700}))
	assert.Equal(t, "-20", config.Values[models.ConfigWindowX])
	assert.Equal(t, "700", config.Values[models.ConfigWindowHeight])

	g, err := service.GetWindowGeometry()
	require.NoError(t, err)
	assert.Equal(t, models.WindowGeometry{X: -20, Y: 5, Width: 900, Height: 700}, g)
}

func TestAppSettingsService_SaveWindowGeometry_RejectsEmptySize(t *testing.T) {
	config := &mocks.AppConfigRepositoryMock{}
	service := services.NewAppSettingsService(config)

	err := service.SaveWindowGeometry(models.WindowGeometry{X: 1, Y: 1, Width: 0, Height: 600})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width")
	assert.Empty(t, config.Values)
}
