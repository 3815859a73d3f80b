package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ember-chat/internal/config"
	"ember-chat/internal/domain"
	"ember-chat/internal/engine"
	"ember-chat/internal/scheduler"
	"ember-chat/internal/seed"
	"ember-chat/internal/storage"
	"ember-chat/pkg/logger"
)

func openStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.Storage.Backend {
	case "redis":
		return storage.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), nil
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return storage.OpenPebble(cfg.Storage.Path)
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	zl := logger.New(cfg.App.Environment)
	defer zl.Sync()

	store, err := openStore(cfg)
	if err != nil {
		zl.Error("store_open_failed", zap.Error(err))
		return
	}
	defer store.Close()

	adapter := storage.NewAdapter(store, zl)
	if adapter.Load(context.Background()).Empty() {
		zl.Info("empty_store_seeding")
		if err := adapter.Save(context.Background(), seed.Snapshot()); err != nil {
			zl.Error("seed_failed", zap.Error(err))
			return
		}
	}

	eng := engine.New(engine.Options{
		Identity: engine.StaticIdentity(cfg.Engine.CurrentUserID),
		Adapter:  adapter,
		Logger:   zl,
		Scheduler: scheduler.Config{
			SentDelay:      cfg.Engine.SentDelay,
			DeliveredDelay: cfg.Engine.DeliveredDelay,
			TypingTTL:      cfg.Engine.TypingTTL,
		},
	})
	defer eng.Close()

	unsub := eng.OnChatsChanged(func(chats []domain.Chat) {
		for _, c := range chats {
			preview := ""
			if c.LastMessage != nil {
				preview = c.LastMessage.Preview()
			}
			zl.Info("chat",
				zap.String("name", c.DisplayName(cfg.Engine.CurrentUserID)),
				zap.String("last", preview),
				zap.Int("unread", c.UnreadCount))
		}
	})
	defer unsub()

	chats := eng.GetChats()
	if len(chats) == 0 {
		zl.Info("no_chats")
		return
	}
	chatID := chats[0].ID

	// A short scripted exchange against the first chat.
	if err := eng.SetTypingIndicator(chatID, cfg.Engine.CurrentUserID, "You"); err != nil {
		zl.Error("typing_failed", zap.Error(err))
	}
	time.Sleep(400 * time.Millisecond)
	eng.ClearTypingIndicator(chatID, cfg.Engine.CurrentUserID)

	msg, err := eng.SendMessage(chatID, domain.TextPayload("Are you free this Friday?"))
	if err != nil {
		zl.Error("send_failed", zap.Error(err))
		return
	}
	zl.Info("sent", zap.String("id", msg.ID), zap.String("status", string(msg.Status)))

	history, err := eng.GetMessages(chatID)
	if err == nil && len(history) > 0 {
		if err := eng.AddReaction(chatID, history[0].ID, "❤️", cfg.Engine.CurrentUserID); err != nil {
			zl.Error("reaction_failed", zap.Error(err))
		}
		if _, err := eng.SendReply(chatID, domain.TextPayload("About your first message…"), history[0].ID); err != nil {
			zl.Error("reply_failed", zap.Error(err))
		}
	}

	// Let the simulated delivery run its course before shutdown.
	time.Sleep(cfg.Engine.SentDelay + cfg.Engine.DeliveredDelay + 200*time.Millisecond)

	final, _ := eng.GetMessages(chatID)
	for _, m := range final {
		zl.Info("message",
			zap.String("from", m.SenderName),
			zap.String("text", m.Preview()),
			zap.String("status", string(m.Status)))
	}
}
