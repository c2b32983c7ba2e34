package domain

import (
	"context"
	"time"

	"homestay/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Repository lookups return (nil, nil) when nothing matches; an error
// always means the store itself failed.

type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) (bool, error)
	CountProjects(ctx context.Context) (int, error)
}

type ServiceRepository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*models.Service, error)
	CreateService(ctx context.Context, in models.ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id int64, patch models.ServicePatch) (*models.Service, error)
	DeleteService(ctx context.Context, id int64) (bool, error)
	CountServices(ctx context.Context) (int, error)
}

type PostRepository interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) (bool, error)
	CountPosts(ctx context.Context) (int, error)
}

type MessageRepository interface {
	ListMessages(ctx context.Context) ([]models.Message, error)
	CreateMessage(ctx context.Context, in models.MessageInput) (*models.Message, error)
	CountMessages(ctx context.Context) (int, error)
}

type RoomRepository interface {
	ListRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	GetRoomByID(ctx context.Context, id int64) (*models.Room, error)
	CreateRoom(ctx context.Context, in models.RoomInput) (*models.Room, error)
	UpdateRoom(ctx context.Context, id int64, patch models.RoomPatch) (*models.Room, error)
	DeleteRoom(ctx context.Context, id int64) (bool, error)
	CountRooms(ctx context.Context) (int, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, fullName, email, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Repository interface {
	ProjectRepository
	ServiceRepository
	PostRepository
	MessageRepository
	RoomRepository
	UserRepository
}

// SessionStore keeps server-side sessions keyed by opaque token, plus
// fixed-window counters used for login throttling.
type SessionStore interface {
	GetSession(ctx context.Context, token string) (*models.Session, error)
	SetSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, token string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	ResetRateLimit(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}
