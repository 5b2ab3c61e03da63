package main

import (
	"context"
	"log/slog"
	"os"

	"Orbit_Community/internal/config"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/mysql"
	"Orbit_Community/internal/repository/redis"
	"Orbit_Community/internal/router"
	"Orbit_Community/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		slog.Error("mysql init failed", "err", err)
		os.Exit(1)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		slog.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.CommunityMembership{},
		&model.Group{},
		&model.GroupMembership{},
		&model.Event{},
		&model.EventAttendance{},
		&model.MembershipOutbox{},
	)

	// 成员变更事件投递
	producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		slog.Error("kafka init failed", "err", err)
		os.Exit(1)
	}
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relayer := service.NewOutboxRelayer(mysql.NewOutboxRepository(mysql.DB), service.KafkaSender(producer))
	go relayer.Run(ctx)

	r := router.InitRouter(cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		slog.Error("server exited", "err", err)
	}
}
