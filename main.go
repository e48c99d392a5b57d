package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"

	"github.com/appdotbuilder/attendance-task-logger/internal/activity"
	"github.com/appdotbuilder/attendance-task-logger/internal/attendance"
	"github.com/appdotbuilder/attendance-task-logger/internal/files"
	"github.com/appdotbuilder/attendance-task-logger/internal/platform/auth"
	"github.com/appdotbuilder/attendance-task-logger/internal/platform/db"
	"github.com/appdotbuilder/attendance-task-logger/internal/requests"
	"github.com/appdotbuilder/attendance-task-logger/internal/tasklogs"
	"github.com/appdotbuilder/attendance-task-logger/internal/users"
)

// 開発用シードアカウントの初期パスワード
const seedPassword = "password123"

func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	// 動作モード取得
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	userSvc := users.NewService(conn)
	authSvc := auth.NewService(conn)

	if cfg.SeedUsers {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		seeded, err := userSvc.EnsureDefaults(ctx)
		if err != nil {
			cancel()
			panic(err)
		}
		for _, u := range seeded {
			if err := authSvc.EnsureAccount(ctx, u.EmployeeID, u.UserID, seedPassword); err != nil {
				cancel()
				panic(err)
			}
		}
		cancel()
		if len(seeded) > 0 {
			log.Printf("[INFO] seeded %d default users", len(seeded))
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// 認証不要
	auth.RegisterRoutes(r, authSvc)

	// /api/v1
	api := r.Group("/api/v1")
	api.Use(auth.RequireAuth(auth.JWTSecret()))
	users.RegisterRoutes(api, userSvc)
	files.RegisterRoutes(api, files.NewService(conn, cfg.Uploads.Dir))
	attendance.RegisterRoutes(api, attendance.NewService(conn))
	requests.RegisterRoutes(api, requests.NewService(conn))
	tasklogs.RegisterRoutes(api, tasklogs.NewService(conn))
	activity.RegisterRoutes(api, activity.NewService(conn))

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
