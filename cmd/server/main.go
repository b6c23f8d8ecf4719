// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/go-screenplay-advisor/internal/core/model"
	"github.com/jaycherian/go-screenplay-advisor/internal/core/services"
	"github.com/jaycherian/go-screenplay-advisor/internal/telemetry"
)

// maxUploadBytes caps screenplay uploads at 10MB. A feature film runs a
// few hundred kilobytes of text, so the cap is generous.
const maxUploadBytes = 10 << 20

func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	_, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState()
	slog.Info("Initialized State")

	r := gin.Default()

	// Add OpenTelemetry middleware
	r.Use(otelgin.Middleware("screenplay-advisor-server"))

	// **Use a default, more robust CORS configuration for development**
	// This allows all origins, methods, and headers, which is safe for local dev
	// and fixes potential communication issues between the frontend and backend.
	r.Use(cors.Default())

	// Create the "/api/v1" group
	apiV1 := r.Group("/api/v1")
	{
		ContextRouter(apiV1)
		ModelsRouter(apiV1)
		HealthRouter(apiV1)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Application.Port),
		Handler: r,
	}

	// Start the server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", config.Application.Port)

	// Wait for an interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// contextRequestBody is the wire form of a context build request. The
// cursor is a pointer so an omitted field can be told apart from an
// explicit position 0.
type contextRequestBody struct {
	Document            string              `json:"document"`
	CursorPosition      *int                `json:"cursor_position"`
	Query               string              `json:"query"`
	ModelId             string              `json:"model_id"`
	ConversationHistory []model.ChatMessage `json:"conversation_history"`
	SystemPromptBase    string              `json:"system_prompt_base"`
}

func (b *contextRequestBody) toRequest() *model.ContextRequest {
	cursor := model.CursorUnset
	if b.CursorPosition != nil {
		cursor = *b.CursorPosition
	}
	return &model.ContextRequest{
		Document:            b.Document,
		CursorPosition:      cursor,
		Query:               b.Query,
		ModelId:             b.ModelId,
		ConversationHistory: b.ConversationHistory,
		SystemPromptBase:    b.SystemPromptBase,
	}
}

// ContextRouter sets up the routes for building advisor context.
func ContextRouter(r *gin.RouterGroup) {
	ctx := r.Group("/context")
	{
		ctx.POST("", func(c *gin.Context) {
			var body contextRequestBody
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %s", err.Error())})
				return
			}
			result, err := state.advisor.BuildContext(c.Request.Context(), body.toRequest())
			if err != nil {
				if errors.Is(err, services.ErrRateLimited) {
					c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, result)
		})

		// Accepts a screenplay as a multipart file plus form fields, for
		// clients that keep the draft on disk rather than in the editor.
		ctx.POST("/upload", func(c *gin.Context) {
			fileHeader, err := c.FormFile("document")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("get form err: %s", err.Error())})
				return
			}
			if fileHeader.Size > maxUploadBytes {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "screenplay file exceeds the 10MB limit"})
				return
			}

			file, err := fileHeader.Open()
			if err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			defer func() {
				if err := file.Close(); err != nil {
					log.Printf("failed to close uploaded file: %v\n", err)
				}
			}()

			content, err := io.ReadAll(file)
			if err != nil {
				log.Println(err)
				c.Status(http.StatusInternalServerError)
				return
			}

			// Screenplays are plain text. Reject anything that sniffs as a
			// known binary format (video, image, archive, pdf).
			if kind, _ := filetype.Match(content); kind != filetype.Unknown {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("expected a plain-text screenplay, got %s", kind.MIME.Value),
				})
				return
			}

			req := &model.ContextRequest{
				Document:       string(content),
				CursorPosition: model.CursorUnset,
				Query:          c.PostForm("query"),
				ModelId:        c.PostForm("model_id"),
			}
			if raw := c.PostForm("cursor_position"); raw != "" {
				cursor, err := strconv.Atoi(raw)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "cursor_position must be an integer"})
					return
				}
				req.CursorPosition = cursor
			}

			result, err := state.advisor.BuildContext(c.Request.Context(), req)
			if err != nil {
				if errors.Is(err, services.ErrRateLimited) {
					c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, result)
		})
	}
}

// ModelsRouter exposes the effective model window table so clients can
// populate a model picker.
func ModelsRouter(r *gin.RouterGroup) {
	r.GET("/models", func(c *gin.Context) {
		c.JSON(http.StatusOK, state.advisor.Windows())
	})
}

// HealthRouter sets up the liveness probe.
func HealthRouter(r *gin.RouterGroup) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "name": state.config.Application.Name})
	})
}
