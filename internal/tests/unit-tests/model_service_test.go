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

func TestModelService_LoadModels(t *testing.T) {
	client := &mocks.ModelClientMock{
		ListModelsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"llama3", "mistral"}, nil
		},
	}
	service := services.NewModelService(client, &mocks.AppConfigRepositoryMock{})
	service.Startup(context.Background())

	names, err := service.LoadModels()
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3", "mistral"}, names)
}

func TestModelService_LoadModels_Error(t *testing.T) {
	client := &mocks.ModelClientMock{
		ListModelsFunc: func(ctx context.Context) ([]string, error) {
			return nil, assert.AnError
		},
	}
	service := services.NewModelService(client, &mocks.AppConfigRepositoryMock{})

	names, err := service.LoadModels()
	assert.Error(t, err)
	assert.Nil(t, names)
}

func TestModelService_SelectedModel(t *testing.T) {
	config := &mocks.AppConfigRepositoryMock{}
	client := &mocks.ModelClientMock{
		ListModelsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"llama3", "mistral"}, nil
		},
	}
	service := services.NewModelService(client, config)

	name, err := service.GetSelectedModel()
	require.NoError(t, err)
	assert.Empty(t, name)

	_, err = service.LoadModels()
	require.NoError(t, err)
	name, err = service.GetSelectedModel()
	require.NoError(t, err)
	assert.Equal(t, "llama3", name)

	require.NoError(t, service.SaveSelectedModel(" mistral "))
	assert.Equal(t, "mistral", config.Values[models.ConfigSelectedModel])

	name, err = service.GetSelectedModel()
	require.NoError(t, err)
	assert.Equal(t, "mistral", name)
}

func TestModelService_SaveSelectedModel_RequiresName(t *testing.T) {
	service := services.NewModelService(&mocks.ModelClientMock{}, &mocks.AppConfigRepositoryMock{})
	assert.Error(t, service.SaveSelectedModel(""))
}
