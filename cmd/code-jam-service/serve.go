package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"code-jam-service/internal/bot"
	"code-jam-service/internal/config"
	"code-jam-service/internal/guild"
	httpapi "code-jam-service/internal/http"
	"code-jam-service/internal/paste"
	"code-jam-service/internal/repository"
	"code-jam-service/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the gateway and handle /codejam commands",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	// Контекст для корректного завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация логгера (JSON)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	// 1. Адаптер сервера и клиент API управления
	guildAPI := guild.NewFromSession(session, cfg.Discord.GuildID)
	client := repository.NewClient(cfg.Management.URL, cfg.Management.Token, cfg.Management.Timeout.Duration)

	teamRepo := repository.NewTeamRepo(client)
	userRepo := repository.NewUserRepo(client)
	jamRepo := repository.NewJamRepo(client)

	// 2. Инициализация сервисов
	lookup := service.NewLookup(guildAPI, teamRepo, userRepo, logger)
	teamService := service.NewTeamService(guildAPI, teamRepo, cfg.Roles.Participants, logger)
	userService := service.NewUserService(guildAPI, teamRepo, userRepo, lookup, logger)
	jamService := service.NewJamService(guildAPI, jamRepo, lookup, logger)

	// 3. Обработчик взаимодействий
	handler := bot.NewHandler(session, bot.Deps{
		Teams:   teamService,
		Jam:     jamService,
		Members: userService,
		Fetcher: service.NewRosterFetcher(&http.Client{Timeout: cfg.Management.Timeout.Duration}),
		Parser:  service.NewRosterParser(guildAPI, logger),
		Paste:   paste.NewClient(cfg.Paste.URL, cfg.Management.Timeout.Duration),
	}, bot.Options{
		AdminRoleIDs:           cfg.Roles.Admins,
		EventTeamRoleID:        cfg.Roles.EventTeam,
		ParticipantsRoleID:     cfg.Roles.Participants,
		AnnouncementsChannelID: cfg.Channels.Announcements,
	}, logger)

	session.AddHandler(handler.Listener(ctx))
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Info("connected to gateway", slog.String("user", r.User.Username))
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	defer session.Close()

	// 4. Служебный HTTP-сервер
	ops := httpapi.NewHandler(func() error {
		if !session.DataReady {
			return errors.New("gateway not connected")
		}
		return nil
	}, logger)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           ops.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}

	logger.Info("server stopped")
	return nil
}
