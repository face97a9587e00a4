package services

import (
	"gorm.io/gorm"

	"ollamachat/internal/repositories"
)

// Services aggregates the services bound to the UI.
type Services struct {
	Chat        ChatService
	Sessions    ChatSessionService
	Models      ModelService
	AppSettings AppSettingsService
	Keyring     *KeyringService
	State       *GenerationState
}

// NewServices wires repositories backed by db to the services. The
// generation state is shared between the chat and session services.
func NewServices(db *gorm.DB, client ModelClient, keyring *KeyringService) *Services {
	configRepo := repositories.NewAppConfigRepository(db)
	sessionRepo := repositories.NewChatSessionRepository(db)
	messageRepo := repositories.NewChatMessageRepository(db)
	state := NewGenerationState()

	return &Services{
		Chat:        NewChatService(client, sessionRepo, messageRepo, state),
		Sessions:    NewChatSessionService(sessionRepo, state),
		Models:      NewModelService(client, configRepo),
		AppSettings: NewAppSettingsService(configRepo),
		Keyring:     keyring,
		State:       state,
	}
}
