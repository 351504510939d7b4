// Package ui provides styled console output for server startup and shutdown.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	infoText    = color.New(color.FgCyan)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)
)

// PrintBanner displays the startup banner.
func PrintBanner(version string) {
	fmt.Println()
	infoText.Println("╔══════════════════════════════════════════════╗")
	infoText.Print("║   ")
	accentText.Print("AuraAI Backend")
	mutedText.Printf("  multimodal AI gateway %-6s", "v"+version)
	infoText.Println("║")
	infoText.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}

// PrintProviderStatus prints one configured-vendor line.
func PrintProviderStatus(name string, primary bool) {
	fmt.Print("  • ")
	successText.Print(name)
	if primary {
		accentText.Print("  (primary)")
	}
	fmt.Println()
}

// PrintListening prints the serving address and endpoint summary.
func PrintListening(addr string) {
	fmt.Println()
	successText.Printf("🚀 AuraAI backend is running at http://%s\n", addr)
	mutedText.Println("   • POST /chat             - multimodal chat")
	mutedText.Println("   • POST /synthesize       - content synthesis")
	mutedText.Println("   • POST /generate-image   - image generation")
	mutedText.Println("   • POST /generate-video   - video generation")
	mutedText.Println("   • GET  /api/providers    - provider status")
	mutedText.Println("   • GET  /health           - health check")
	fmt.Println()
}

// PrintShutdown prints the graceful-shutdown notices.
func PrintShutdown() {
	fmt.Println()
	warningText.Println("⏳ Shutting down gracefully...")
}

// PrintStopped prints the final goodbye.
func PrintStopped() {
	successText.Println("✅ Server stopped. Goodbye!")
}
