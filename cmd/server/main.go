package main

import (
	"os"

	"forge-ai/backend/internal/app"
)

// @title           Forge AI Backend API
// @version         1.0
// @description     Multi-provider LLM chat backend with tool calling, artifact generation and NDJSON response streaming.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
