package service

import (
	"context"

	"code-jam-service/internal/model"
)

const (
	// JamCategoryName зарезервированное имя категорий с каналами команд.
	JamCategoryName = "Code Jam"
	// TeamLeaderRoleName имя общей роли лидеров команд.
	TeamLeaderRoleName = "Code Jam Team Leaders"
	// TeamLeadersChannelName имя канала лидеров в категории джема.
	TeamLeadersChannelName = "team-leaders"
	// MaxCategoryChannels ограничение платформы на число каналов в категории.
	MaxCategoryChannels = 50
)

// Guild описывает операции над сервером, которые нужны бизнес-слою.
type Guild interface {
	Member(ctx context.Context, userID string) (model.Member, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Roles(ctx context.Context) ([]model.Role, error)
	CreateRole(ctx context.Context, name string) (model.Role, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	CreateChannel(ctx context.Context, categoryID, name, roleID string) (model.Channel, error)
	AddRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
	DeleteChannel(ctx context.Context, channelID string) error
	DeleteRole(ctx context.Context, roleID string) error
}
